package controllers

import (
	"net/http"

	"github.com/renewbay/renewbay-backend/api/responses"
	"github.com/renewbay/renewbay-backend/pkg/config"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/logger"
	"github.com/renewbay/renewbay-backend/pkg/uploads"
)

type uploadResponse struct {
	Path string `json:"path"`
}

// UploadImage accepts a multipart file and returns the stored path. The
// path is opaque to the API; callers attach it to products, repair
// tickets, or sell requests as-is.
func UploadImage(sink uploads.Sink, cfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sink == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "upload sink not configured"))
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart upload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		path, err := sink.Store(header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store upload"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, uploadResponse{Path: path})
	}
}
