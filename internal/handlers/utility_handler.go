package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"umd-backend/internal/models"
	"umd-backend/internal/services"
	"umd-backend/pkg/utils"
)

// maxUploadSize caps bill evidence at 10 MB.
const maxUploadSize = 10 << 20

type UtilityHandler struct {
	Service *services.ExpenseService
}

func NewUtilityHandler(s *services.ExpenseService) *UtilityHandler {
	return &UtilityHandler{Service: s}
}

// Upload accepts a multipart form: bill fields plus an optional "file"
// part carrying the evidence document.
func (h *UtilityHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	req := &models.UploadBillRequest{
		BranchID:      formInt(r, "branch_id"),
		UtilityTypeID: formInt(r, "utility_type_id"),
		Year:          formInt(r, "year"),
		Month:         formInt(r, "month"),
		MediaType:     r.FormValue("media_type"),
	}
	req.UnitsUsed, _ = strconv.ParseFloat(r.FormValue("units_used"), 64)
	var err error
	req.Amount, err = strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	var file io.Reader
	var filename string
	f, header, err := r.FormFile("file")
	if err == nil {
		defer f.Close()
		file = f
		filename = header.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		utils.Message(w, http.StatusBadRequest, "Invalid file upload")
		return
	}

	bill, alert, err := h.Service.Upload(r.Context(), id, req, file, filename)
	if err != nil {
		utils.Error(w, err)
		return
	}

	resp := map[string]interface{}{
		"message": "Bill uploaded successfully",
		"bill":    bill,
	}
	if alert != nil {
		resp["alert"] = map[string]string{
			"type":     alert.Type,
			"severity": alert.Severity,
			"message":  alert.Message,
		}
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func formInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.FormValue(name))
	return v
}

func (h *UtilityHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	filter := &models.BillFilter{
		BranchID:      queryInt(r, "branch_id", 0),
		Year:          queryInt(r, "year", 0),
		Month:         queryInt(r, "month", 0),
		UtilityTypeID: queryInt(r, "utility_type_id", 0),
		Page:          queryInt(r, "page", 1),
		PageSize:      queryInt(r, "page_size", 10),
	}
	page, err := h.Service.List(r.Context(), id, filter)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

func (h *UtilityHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	billID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	detail, err := h.Service.Detail(r.Context(), id, billID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *UtilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	billID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	if err := h.Service.Delete(r.Context(), id, billID); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Bill deleted successfully")
}

// FetchMedia streams the bill's active evidence file.
func (h *UtilityHandler) FetchMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	billID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	media, rc, err := h.Service.OpenMedia(r.Context(), id, billID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Disposition", `inline; filename="`+media.Name+`"`)
	if media.MediaType != "" {
		w.Header().Set("Content-Type", media.MediaType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	io.Copy(w, rc)
}

// ReplaceMedia swaps the bill's evidence document for a new upload.
func (h *UtilityHandler) ReplaceMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	billID, ok := pathInt(r, "id")
	if !ok {
		utils.Message(w, http.StatusBadRequest, "Invalid bill id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.Message(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		utils.Message(w, http.StatusBadRequest, "File is required")
		return
	}
	defer f.Close()

	media, err := h.Service.ReplaceMedia(r.Context(), id, billID, f, header.Filename, r.FormValue("media_type"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Media replaced successfully",
		"media":   media,
	})
}

func (h *UtilityHandler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.UtilityTypes(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"utility_types": types})
}

func (h *UtilityHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	opts, err := h.Service.FilterOptions(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, opts)
}
