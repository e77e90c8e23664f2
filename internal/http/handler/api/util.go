package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/garden/internal/core/service"
	"github.com/bornholm/go-x/slogx"
)

type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func getListOptions(query url.Values) service.ListOptions {
	opts := service.ListOptions{
		Skip: getQueryInt(query, "skip", 0),
	}

	if query.Has("limit") {
		limit := getQueryInt(query, "limit", service.DefaultMaxLimit)
		opts.Limit = &limit
	}

	return opts
}

func getQueryInt(query url.Values, name string, defaultValue int) int {
	raw := query.Get(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return defaultValue
	}

	return int(value)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	if err := encoder.Encode(value); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(err))
	}
}

func decodeJSON(r *http.Request, value any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(value)
}
