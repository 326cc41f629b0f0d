package api

import (
	"context"
	"net/http"

	"github.com/healix-app/healix-go/pkg/model"
)

// Medications fetches the remote medication collection
func (c *Client) Medications(ctx context.Context) ([]model.Medication, error) {
	var out medicationsResponse
	if err := c.do(ctx, http.MethodGet, "/medications", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to get medications"))
	}
	return out.Medications, nil
}

// CreateMedication pushes a new medication and returns the stored
// record with its backend id.
func (c *Client) CreateMedication(ctx context.Context, med *model.Medication) (*model.Medication, error) {
	var out medicationResponse
	if err := c.do(ctx, http.MethodPost, "/medications", med, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Medication == nil {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to create medication"))
	}
	return out.Medication, nil
}

// UpdateMedication replaces fields of a backend-known medication
func (c *Client) UpdateMedication(ctx context.Context, id string, med *model.Medication) (*model.Medication, error) {
	var out medicationResponse
	if err := c.do(ctx, http.MethodPut, "/medications/"+id, med, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to update medication"))
	}
	return out.Medication, nil
}

// DeleteMedication removes a backend-known medication by id
func (c *Client) DeleteMedication(ctx context.Context, id string) error {
	var out envelope
	if err := c.do(ctx, http.MethodDelete, "/medications/"+id, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return applicationError(http.StatusOK, firstMessage(out.Message, "failed to delete medication"))
	}
	return nil
}

// Prescriptions fetches the remote prescription collection
func (c *Client) Prescriptions(ctx context.Context) ([]model.Prescription, error) {
	var out prescriptionsResponse
	if err := c.do(ctx, http.MethodGet, "/prescriptions", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to get prescriptions"))
	}
	return out.Prescriptions, nil
}

// CreatePrescription pushes a new prescription, optionally carrying its
// medications in one payload.
func (c *Client) CreatePrescription(ctx context.Context, rx *model.Prescription, meds []model.Medication) (*model.Prescription, error) {
	payload := struct {
		model.Prescription
		Medications []model.Medication `json:"medications,omitempty"`
	}{Prescription: *rx, Medications: meds}

	var out prescriptionResponse
	if err := c.do(ctx, http.MethodPost, "/prescriptions", payload, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Prescription == nil {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to create prescription"))
	}
	return out.Prescription, nil
}

// DeletePrescription removes a backend-known prescription by id
func (c *Client) DeletePrescription(ctx context.Context, id string) error {
	var out envelope
	if err := c.do(ctx, http.MethodDelete, "/prescriptions/"+id, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return applicationError(http.StatusOK, firstMessage(out.Message, "failed to delete prescription"))
	}
	return nil
}

// Reports fetches the remote report collection
func (c *Client) Reports(ctx context.Context) ([]model.Report, error) {
	var out reportsResponse
	if err := c.do(ctx, http.MethodGet, "/reports", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to get reports"))
	}
	return out.Reports, nil
}

// CreateReport pushes a new report
func (c *Client) CreateReport(ctx context.Context, report *model.Report) (*model.Report, error) {
	var out reportResponse
	if err := c.do(ctx, http.MethodPost, "/reports", report, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Report == nil {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "failed to create report"))
	}
	return out.Report, nil
}

// DeleteReport removes a backend-known report by id
func (c *Client) DeleteReport(ctx context.Context, id string) error {
	var out envelope
	if err := c.do(ctx, http.MethodDelete, "/reports/"+id, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return applicationError(http.StatusOK, firstMessage(out.Message, "failed to delete report"))
	}
	return nil
}
