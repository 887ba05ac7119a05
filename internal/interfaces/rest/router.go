package rest

import "net/http"

// NewRouter registers POST /payment and answers everything else with a JSON 404.
// metrics may be nil.
func NewRouter(payments *PaymentHandler, metrics http.Handler, metricsPath string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payment", payments.ProcessPayment)
	if metrics != nil {
		mux.Handle("GET "+metricsPath, metrics)
	}
	mux.HandleFunc("/", NotFound)
	return mux
}
