package model

import (
	"testing"
)

func TestInvoiceTotal(t *testing.T) {
	purchases := []Purchase{
		{Name: "年度会员", Price: 50.00, Quantity: 4},
		{Name: "押金", Price: 10.50, Quantity: 1},
	}

	got := InvoiceTotal(purchases)
	want := 210.50
	if got != want {
		t.Errorf("InvoiceTotal = %.2f, want %.2f", got, want)
	}
}

func TestInvoiceTotalEmpty(t *testing.T) {
	if got := InvoiceTotal(nil); got != 0 {
		t.Errorf("空明细的总额 = %.2f, want 0", got)
	}
}
