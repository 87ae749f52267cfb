package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockbill_invoices_created_total",
		Help: "Invoices committed successfully.",
	})
	InvoiceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockbill_invoice_failures_total",
		Help: "Invoice creation failures by reason.",
	}, []string{"reason"})
	PDFRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockbill_pdf_rendered_total",
		Help: "Invoice PDFs generated.",
	})
)
