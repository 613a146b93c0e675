package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"billgenerator/billing"
	"billgenerator/collections"
	"billgenerator/testhelpers"
)

func TestHandleBillPreview_ReturnsDocuments(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newUploadRequest(t, "/bills/preview", testhelpers.SampleWorkbook(t), testhelpers.SampleFormValues())
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleBillPreview(app)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Documents   map[string]json.RawMessage `json:"documents"`
		Diagnostics []billing.Diagnostic       `json:"diagnostics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	for _, name := range billing.DocumentNames {
		if _, ok := got.Documents[name]; !ok {
			t.Errorf("preview has no %s", name)
		}
	}
	if got.Diagnostics == nil {
		t.Error("diagnostics should be an empty list, not null")
	}

	var cert billing.CertificateData
	if err := json.Unmarshal(got.Documents[billing.DocCertificate], &cert); err != nil {
		t.Fatalf("certificate_data: %v", err)
	}
	if cert.Balance != 1350 {
		t.Errorf("certificate balance = %d, want 1350", cert.Balance)
	}

	runs, err := collections.ListBillRuns(app, 10)
	if err != nil {
		t.Fatalf("ListBillRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("preview stored %d runs, want none", len(runs))
	}
}

func TestHandleBillPreview_InvalidConfig(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	values := testhelpers.SampleFormValues()
	values["premium_type"] = "sideways"
	req := newUploadRequest(t, "/bills/preview", testhelpers.SampleWorkbook(t), values)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleBillPreview(app)(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}
