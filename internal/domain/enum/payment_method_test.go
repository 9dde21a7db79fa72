package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_JSON(t *testing.T) {
	b, err := json.Marshal(PaymentMethodNEFT)
	require.NoError(t, err)
	assert.JSONEq(t, `"NEFT / IMPS"`, string(b))

	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"Cheque"`), &m))
	assert.Equal(t, PaymentMethodCheque, m)

	require.NoError(t, json.Unmarshal([]byte(`2`), &m))
	assert.Equal(t, PaymentMethodUPI, m)

	assert.Error(t, json.Unmarshal([]byte(`"Card"`), &m))
	assert.Error(t, json.Unmarshal([]byte(`9`), &m))
}

func TestPaymentMethod_CheckboxShape(t *testing.T) {
	assert.Equal(t, "Cash Check", PaymentMethodCash.CheckboxShape())
	assert.Equal(t, "NEFT Check", PaymentMethodNEFT.CheckboxShape())
	assert.Equal(t, "UPI Check", PaymentMethodUPI.CheckboxShape())
	assert.Equal(t, "Cheque Check", PaymentMethodCheque.CheckboxShape())
}

func TestPaymentMethod_Scan(t *testing.T) {
	var m PaymentMethod
	require.NoError(t, m.Scan(int64(3)))
	assert.Equal(t, PaymentMethodCheque, m)
	require.NoError(t, m.Scan(nil))
	assert.Equal(t, PaymentMethodCash, m)
}
