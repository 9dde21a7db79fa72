package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod is how the client settles the invoice. Exactly one is ticked on the document.
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodNEFT   PaymentMethod = 1
	PaymentMethodUPI    PaymentMethod = 2
	PaymentMethodCheque PaymentMethod = 3
)

var paymentMethodLabels = [...]string{"Cash", "NEFT / IMPS", "UPI", "Cheque"}

// PaymentMethods lists every method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodNEFT, PaymentMethodUPI, PaymentMethodCheque}
}

func (m PaymentMethod) IsValid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodCheque
}

func (m PaymentMethod) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("PaymentMethod(%d)", int(m))
	}
	return paymentMethodLabels[m]
}

// CheckboxShape is the name of the template shape that carries this method's tick.
func (m PaymentMethod) CheckboxShape() string {
	return [...]string{"Cash Check", "NEFT Check", "UPI Check", "Cheque Check"}[m]
}

// ParsePaymentMethod accepts the display label ("NEFT / IMPS").
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for i, label := range paymentMethodLabels {
		if label == s {
			return PaymentMethod(i), nil
		}
	}
	return PaymentMethodCash, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMethod(i).IsValid() {
			return fmt.Errorf("unknown payment method %d", i)
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
