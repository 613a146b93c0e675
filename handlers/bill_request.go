package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"billgenerator/billing"
	"billgenerator/services"
	"billgenerator/templates"
)

// maxUploadSize caps the multipart form holding the workbook.
const maxUploadSize = 20 << 20

var (
	errNoWorkbook = errors.New("please select a workbook to upload")
	errBadForm    = errors.New("file too large or invalid form data")
)

// billRequest is a parsed bill form submission.
type billRequest struct {
	Values   map[string]string
	Filename string
	Input    billing.Input
	Config   billing.Config
}

// formValues collects the known bill form fields. Fields left out of the form
// stay absent so ParseConfig can report them.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(templates.BillFormFields))
	for _, f := range templates.BillFormFields {
		if _, ok := r.Form[f.Name]; ok {
			values[f.Name] = strings.TrimSpace(r.FormValue(f.Name))
		}
	}
	return values
}

// parseBillRequest reads the uploaded workbook and the configuration fields.
// The returned billRequest always carries the submitted values, also on error,
// so the form can be redisplayed.
func parseBillRequest(e *core.RequestEvent) (*billRequest, error) {
	if err := e.Request.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("bill_request: parse form: %v", err)
		return &billRequest{}, errBadForm
	}
	req := &billRequest{Values: formValues(e.Request)}

	file, header, err := e.Request.FormFile("workbook")
	if err != nil {
		return req, errNoWorkbook
	}
	defer file.Close()
	req.Filename = filepath.Base(header.Filename)

	cfg, err := billing.ParseConfig(req.Values)
	if err != nil {
		return req, err
	}
	req.Config = cfg

	in, err := services.ReadWorkbook(file)
	if err != nil {
		return req, err
	}
	req.Input = in
	return req, nil
}

// isClientError reports whether err was caused by the submitted data.
func isClientError(err error) bool {
	var verr *billing.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, errNoWorkbook) ||
		errors.Is(err, billing.ErrMissingSheet) ||
		errors.Is(err, errBadForm) ||
		errors.Is(err, services.ErrTooFewColumns) ||
		errors.Is(err, services.ErrInvalidWorkbook)
}

// logDiagnostics writes every warning of a run to the application log.
func logDiagnostics(prefix string, diags []billing.Diagnostic) {
	for _, d := range diags {
		log.Printf("%s: %s: %s", prefix, d.Kind, d)
	}
}

// respondBillError reports a failed submission. HTMX requests get a toast,
// regular posts get the form back with the message.
func respondBillError(e *core.RequestEvent, values map[string]string, err error) error {
	status := http.StatusInternalServerError
	message := "Failed to generate bill"
	if isClientError(err) {
		status = http.StatusBadRequest
		message = err.Error()
	}

	if e.Request.Header.Get("HX-Request") == "true" {
		return ErrorToast(e, status, message)
	}

	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	e.Response.WriteHeader(status)
	return templates.BillFormPage(templates.BillFormData{Values: values, Error: message}).Render(e.Request.Context(), e.Response)
}
