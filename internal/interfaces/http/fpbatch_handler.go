package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fpbatch-converter/internal/application/conversion"
	"github.com/jhoicas/fpbatch-converter/internal/application/dto"
	"github.com/jhoicas/fpbatch-converter/internal/domain"
	"github.com/jhoicas/fpbatch-converter/internal/domain/entity"
	"github.com/jhoicas/fpbatch-converter/internal/domain/fpbatch"
)

// Nombre del archivo descargable.
const (
	FPBatchFileName = "FPBATCH.txt"
	TextFileName    = "facturas.txt"
)

// FPBatchHandler maneja la conversión XML/ZIP -> FPBATCH, la validación y el TXT.
type FPBatchHandler struct {
	uc *conversion.ConvertUseCase
}

// NewFPBatchHandler construye el handler.
func NewFPBatchHandler(uc *conversion.ConvertUseCase) *FPBatchHandler {
	return &FPBatchHandler{uc: uc}
}

// Convert godoc
// @Summary      Convertir facturas XML/ZIP a FPBATCH
// @Tags         fpbatch
// @Accept       multipart/form-data
// @Produce      json
// @Param        files     formData  file    true   "XML o ZIP (varios)"
// @Param        download  query     string  false  "1 = devuelve el archivo ISO-8859-1"
// @Success      200  {object}  dto.ConvertResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.BatchErrorResponse
// @Router       /api/fpbatch [post]
func (h *FPBatchHandler) Convert(c *fiber.Ctx) error {
	files, err := readUploads(c, "files")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	res, err := h.uc.Convert(c.UserContext(), conversion.SourceAPI, files)
	if err != nil {
		var failures []conversion.FileError
		if res != nil {
			failures = res.Failures
		}
		return writeError(c, err, failures)
	}

	c.Set("X-Batch-ID", res.BatchID)
	c.Set("X-Invoices", strconv.Itoa(len(res.Invoices)))
	c.Set("X-Errors", strconv.Itoa(len(res.Failures)))
	if c.QueryBool("download") {
		c.Set(fiber.HeaderContentType, "text/plain; charset=ISO-8859-1")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", FPBatchFileName))
		return c.Send(res.FPBatch)
	}
	return c.JSON(toConvertResponse(res))
}

// Validate godoc
// @Summary      Validar un FPBATCH existente
// @Tags         fpbatch
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  false  "FPBATCH (si no, el cuerpo crudo)"
// @Success      200  {object}  dto.ValidationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fpbatch/validate [post]
func (h *FPBatchHandler) Validate(c *fiber.Ctx) error {
	content := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		f, err := readFile(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
		}
		content = f.Data
	}
	report, err := h.uc.Validate(content)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(toValidationResponse(report))
}

// Text godoc
// @Summary      Exportar facturas a TXT legible
// @Tags         fpbatch
// @Accept       multipart/form-data
// @Produce      plain
// @Param        files  formData  file  true  "XML o ZIP (varios)"
// @Success      200  {string}  string
// @Failure      422  {object}  dto.BatchErrorResponse
// @Router       /api/txt [post]
func (h *FPBatchHandler) Text(c *fiber.Ctx) error {
	files, err := readUploads(c, "files")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	res, err := h.uc.ExportText(c.UserContext(), files)
	if err != nil {
		var failures []conversion.FileError
		if res != nil {
			failures = res.Failures
		}
		return writeError(c, err, failures)
	}
	c.Set("X-Batch-ID", res.BatchID)
	c.Set("X-Errors", strconv.Itoa(len(res.Failures)))
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", TextFileName))
	return c.Send(res.Text)
}

func readUploads(c *fiber.Ctx, field string) ([]entity.SourceFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("se esperaba multipart/form-data con el campo %q", field)
	}
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no se recibieron archivos en el campo %q", field)
	}
	files := make([]entity.SourceFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) (entity.SourceFile, error) {
	rd, err := fh.Open()
	if err != nil {
		return entity.SourceFile{}, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	defer rd.Close()
	b, err := io.ReadAll(rd)
	if err != nil {
		return entity.SourceFile{}, fmt.Errorf("leer %s: %w", fh.Filename, err)
	}
	return entity.SourceFile{Name: fh.Filename, Data: b}, nil
}

func writeError(c *fiber.Ctx, err error, failures []conversion.FileError) error {
	switch {
	case errors.Is(err, domain.ErrNoInvoices):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.BatchErrorResponse{
			Code:    "NO_INVOICES",
			Message: err.Error(),
			Errors:  toFileErrors(failures),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toConvertResponse(res *conversion.Result) dto.ConvertResponse {
	out := dto.ConvertResponse{
		BatchID:    res.BatchID,
		Invoices:   len(res.Invoices),
		Records:    res.Records,
		Bytes:      len(res.FPBatch),
		DurationMS: res.Duration.Milliseconds(),
		Summary:    make([]dto.InvoiceSummary, 0, len(res.Invoices)),
		Errors:     toFileErrors(res.Failures),
		Validation: toValidationResponse(res.Validation),
		FileName:   FPBatchFileName,
		Content:    res.FPBatch,
	}
	for _, inv := range res.Invoices {
		out.Summary = append(out.Summary, dto.InvoiceSummary{
			File:      inv.SourceName,
			Number:    inv.Number,
			Date:      inv.Date,
			Supplier:  inv.Supplier.Name,
			NIT:       inv.Supplier.NIT,
			Customer:  inv.Customer.Name,
			Total:     inv.Total,
			Currency:  inv.Currency,
			LineCount: len(inv.Items),
		})
	}
	return out
}

func toFileErrors(failures []conversion.FileError) []dto.FileErrorResponse {
	out := make([]dto.FileErrorResponse, 0, len(failures))
	for _, f := range failures {
		out = append(out, dto.FileErrorResponse{File: f.File, Message: f.Message})
	}
	return out
}

func toValidationResponse(r fpbatch.Report) dto.ValidationResponse {
	return dto.ValidationResponse{OK: r.OK, Errors: r.Errors, Warnings: r.Warnings}
}
