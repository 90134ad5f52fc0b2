package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dogao/cardapio/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

var errInvalidID = errors.New("invalid id")

// parseID reads a positive numeric route parameter
func parseID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// parsePrice accepts "15.50", "15,50" and "1.234,50"
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	if raw == "" {
		return decimal.Zero, service.ErrInvalidPrice
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, service.ErrInvalidPrice
	}
	return price, nil
}

// parseForm reads a multipart or urlencoded form bounded by maxBytes
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formUpload returns the file posted under field, or nil when none was chosen
// or the form was not multipart.
// The returned close func is never nil.
func formUpload(r *http.Request, field string) (*service.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	if header.Filename == "" || header.Size == 0 {
		file.Close()
		return nil, func() {}, nil
	}
	return &service.Upload{Filename: header.Filename, Content: file}, func() { file.Close() }, nil
}

// isTooLarge reports whether err comes from an oversized request body
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
