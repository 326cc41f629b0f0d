package api

import (
	"context"
	"io"
	"net/http"

	"github.com/healix-app/healix-go/pkg/model"
	"go.uber.org/zap"
)

// UploadPrescription sends a prescription document to the OCR endpoint
// and returns the best-effort extracted fields.
func (c *Client) UploadPrescription(ctx context.Context, filename string, file io.Reader) (*OCRExtracted, error) {
	out, err := c.uploadOCR(ctx, "/prescriptions/ocr", filename, file)
	if err != nil {
		return nil, err
	}
	if out.Extracted == nil {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "OCR upload failed"))
	}
	return out.Extracted, nil
}

// UploadReport sends a report document to the OCR endpoint and returns
// the parsed report.
func (c *Client) UploadReport(ctx context.Context, filename string, file io.Reader) (*model.Report, error) {
	out, err := c.uploadOCR(ctx, "/reports/ocr", filename, file)
	if err != nil {
		return nil, err
	}
	if out.Report == nil {
		return nil, applicationError(http.StatusOK, firstMessage(out.Message, "OCR upload failed"))
	}
	return out.Report, nil
}

// uploadOCR posts one multipart file. The content type is left to the
// multipart writer so the boundary is set; the bearer header is
// attached directly since multipart uploads skip the do() retry cycle,
// matching the upload contract.
func (c *Client) uploadOCR(ctx context.Context, path, filename string, file io.Reader) (*ocrResponse, error) {
	access, _ := c.tokens.Tokens(ctx)

	var out ocrResponse
	var failure envelope
	req := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, file).
		SetResult(&out).
		SetError(&failure)
	if access != "" {
		req.SetAuthToken(access)
	}

	resp, err := req.Post(path)
	if err != nil {
		c.logger.Error("OCR upload failed", zap.String("path", path), zap.Error(err))
		return nil, networkError(err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, authError(failure.Message)
	}
	if resp.IsError() || !out.Success {
		return nil, applicationError(resp.StatusCode(), firstMessage(out.Message, failure.Message, "OCR upload failed"))
	}
	return &out, nil
}
