// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/pennywise/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement prefixes that carry no merchant information.
var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
	"NETS ",
	"GIRO ",
}

// Parser converts OFX statements into spending transactions for one user.
type Parser struct {
	userID int
}

// NewParser creates a new OFX parser that assigns imported transactions to userID.
func NewParser(userID int) *Parser {
	return &Parser{userID: userID}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare tag line
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its spending transactions.
// Credits (refunds, salary, interest) are not spending and are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			txns, n := p.convertList(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
			transactions = append(transactions, txns...)
			skipped += n
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			txns, n := p.convertList(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
			transactions = append(transactions, txns...)
			skipped += n
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"skipped_credits", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertList(list []ofxgo.Transaction, accountID string) ([]model.Transaction, int) {
	var transactions []model.Transaction
	skipped := 0
	for _, ofxTx := range list {
		tx, ok := p.convertTransaction(ofxTx, accountID)
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, skipped
}

// convertTransaction converts an OFX transaction to our model. It reports
// false for anything that is not money leaving the account.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Transaction, bool) {
	// OFX uses negative amounts for debits
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)
	if !amount.IsNegative() {
		slog.Debug("Skipping credit",
			"fitid", ofxTx.FiTID,
			"amount", amount.String())
		return model.Transaction{}, false
	}

	tx := model.Transaction{
		ID:        accountID + "-" + string(ofxTx.FiTID),
		UserID:    p.userID,
		Timestamp: ofxTx.DtPosted.Time,
		Merchant:  p.extractMerchantName(ofxTx),
		Amount:    amount.Neg(),
		AccountID: accountID,
	}
	tx.Hash = tx.GenerateHash()
	return tx, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually the cleanest merchant name
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " posting date
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// GetAccounts extracts unique account IDs from the OFX file, in statement order.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id ofxgo.String) {
		if id != "" && !seen[string(id)] {
			seen[string(id)] = true
			accounts = append(accounts, string(id))
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(stmt.BankAcctFrom.AcctID)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(stmt.CCAcctFrom.AcctID)
		}
	}

	return accounts, nil
}
