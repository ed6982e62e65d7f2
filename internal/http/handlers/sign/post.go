package sign

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"signdesk/internal/dto"
	"signdesk/internal/models"
	errutils "signdesk/internal/utils/http_errors"
)

// Post accepts the recipient's signature submission and returns the signed
// document view.
func Post(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, signer DocumentSigner) {
	op := pkg + "Post"

	log = log.With(slog.String("op", op))

	var req dto.SignRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode sign request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Token == "" {
		errutils.WriteJSONError(w, http.StatusBadRequest, "missing token")
		return
	}

	signature, err := decodeSignature(req.Signature)
	if err != nil {
		log.Warn("failed to decode signature image", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrBadSignatureImage.Error())
		return
	}

	view, err := signer.SignDocument(ctx, &models.SignRequest{
		Token:       req.Token,
		SignerName:  req.SignerName,
		SignerEmail: req.SignerEmail,
		Signature:   signature,
		Click: models.ClickPosition{
			X:          req.X,
			Y:          req.Y,
			Page:       req.Page,
			PageWidth:  req.PageWidth,
			PageHeight: req.PageHeight,
			Width:      req.Width,
			Height:     req.Height,
		},
	})
	if err != nil {
		log.Warn("failed to sign document", slog.String("error", err.Error()))
		writeSignError(log, w, err)
		return
	}

	response := map[string]any{
		"data": view,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// decodeSignature accepts either plain base64 or a browser data URL
// ("data:image/png;base64,...").
func decodeSignature(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx != -1 && strings.HasPrefix(s, "data:") {
		s = s[idx+1:]
	}

	return base64.StdEncoding.DecodeString(s)
}
