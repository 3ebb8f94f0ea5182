package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ofxHeader = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
`

// Sample OFX data for testing.
const sampleBankOFX = ofxHeader + `<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>SGD
<BANKACCTFROM>
<BANKID>7171
<ACCTID>0123456789
<ACCTTYPE>SAVINGS
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-12.50
<FITID>2024011501
<NAME>NETS GRAB RIDE
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-86.35
<FITID>2024012001
<NAME>FairPrice Finest
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>4200.00
<FITID>2024012501
<NAME>SALARY
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = ofxHeader + `<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>SGD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>SHOPEE SINGAPORE
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-17.98
<FITID>CC2024011501
<NAME>NETFLIX SUBSCRIPTION
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "bank statement skips credits",
			ofxData:       sampleBankOFX,
			expectedCount: 2,
		},
		{
			name:          "credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(1)
			transactions, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser(7)
	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	tx1 := transactions[0]
	assert.Equal(t, "0123456789-2024011501", tx1.ID)
	assert.Equal(t, "GRAB RIDE", tx1.Merchant)
	assert.True(t, decimal.RequireFromString("12.50").Equal(tx1.Amount), "got %s", tx1.Amount)
	assert.Equal(t, "0123456789", tx1.AccountID)
	assert.Equal(t, 7, tx1.UserID)
	assert.Equal(t, 2024, tx1.Timestamp.Year())
	assert.Equal(t, time.January, tx1.Timestamp.Month())
	assert.Equal(t, 15, tx1.Timestamp.Day())
	assert.Equal(t, tx1.GenerateHash(), tx1.Hash)

	tx2 := transactions[1]
	assert.Equal(t, "FairPrice Finest", tx2.Merchant)
	assert.True(t, decimal.RequireFromString("86.35").Equal(tx2.Amount))
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser(1)
	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "4111111111111111-CC2024011001", transactions[0].ID)
	assert.Equal(t, "SHOPEE SINGAPORE", transactions[0].Merchant)
	assert.True(t, decimal.RequireFromString("45.99").Equal(transactions[0].Amount))
	assert.Equal(t, "NETFLIX SUBSCRIPTION", transactions[1].Merchant)
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(1).ParseFile(ctx, strings.NewReader(sampleBankOFX))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser(1)

	tests := []struct {
		tx       ofxgo.Transaction
		name     string
		expected string
	}{
		{name: "remove POS prefix", tx: ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, expected: "STARBUCKS"},
		{name: "remove NETS prefix", tx: ofxgo.Transaction{Name: "nets Kopitiam"}, expected: "Kopitiam"},
		{name: "keep clean name", tx: ofxgo.Transaction{Name: "Singtel Mobile Bill"}, expected: "Singtel Mobile Bill"},
		{name: "trim whitespace", tx: ofxgo.Transaction{Name: "  LAZADA  "}, expected: "LAZADA"},
		{name: "strip posting date", tx: ofxgo.Transaction{Name: "01/15 GOLDEN VILLAGE"}, expected: "GOLDEN VILLAGE"},
		{name: "memo for generic name", tx: ofxgo.Transaction{Name: "PAYMENT", Memo: "SP SERVICES"}, expected: "SP SERVICES"},
		{
			name:     "payee wins",
			tx:       ofxgo.Transaction{Name: "DEBIT", Payee: &ofxgo.Payee{Name: "Cold Storage"}},
			expected: "Cold Storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.extractMerchantName(tt.tx))
		})
	}
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser(1)

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"0123456789"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}
