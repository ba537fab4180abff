// Package billing assembles invoice documents from the static billing data set.
package billing

import "strings"

// Provider is the issuing company.
type Provider struct {
	Name    string
	Address string
}

// AddressLines splits the multi-line address, dropping blank lines.
func (p Provider) AddressLines() []string {
	return splitLines(p.Address)
}

// Customer is the purchaser an invoice is addressed to.
type Customer struct {
	Name              string
	Address           string
	BankAccountNumber string
}

func (c Customer) AddressLines() []string {
	return splitLines(c.Address)
}

// LineItem is one billable entry. Values are pre-formatted for print.
type LineItem struct {
	Name     string
	Quantity string
	Unit     string
	Price    string
	Amount   string
}

// InvoiceDates holds DD-MM-YYYY issue and due dates.
type InvoiceDates struct {
	IssueDate string
	DueDate   string
}

// Document is everything a renderer needs to print one invoice.
type Document struct {
	ID       string
	Provider Provider
	Customer Customer
	Dates    InvoiceDates
	Items    []LineItem
	Total    string
}

// Number is the invoice number as printed.
func (d Document) Number() string {
	return "NO. " + d.ID
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
