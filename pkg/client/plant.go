package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/garden/internal/http/handler/api"
	"github.com/pkg/errors"
)

type ListOptions struct {
	Skip  int
	Limit *int
}

func (o ListOptions) query() string {
	query := url.Values{}

	if o.Skip > 0 {
		query.Set("skip", strconv.Itoa(o.Skip))
	}

	if o.Limit != nil {
		query.Set("limit", strconv.Itoa(*o.Limit))
	}

	if len(query) == 0 {
		return ""
	}

	return "?" + query.Encode()
}

func (c *Client) ListPlants(ctx context.Context, opts ListOptions) ([]api.Plant, int64, error) {
	var res api.ListResponse[api.Plant]
	if err := c.jsonRequest(ctx, http.MethodGet, "/plants"+opts.query(), nil, &res); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return res.Data, res.Count, nil
}

func (c *Client) GetPlant(ctx context.Context, plantID string) (*api.Plant, error) {
	var plant api.Plant
	if err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/plants/%s", plantID), nil, &plant); err != nil {
		return nil, errors.WithStack(err)
	}

	return &plant, nil
}

func (c *Client) CreatePlant(ctx context.Context, req api.CreatePlantRequest) (*api.Plant, error) {
	var plant api.Plant
	if err := c.jsonRequest(ctx, http.MethodPost, "/plants", req, &plant); err != nil {
		return nil, errors.WithStack(err)
	}

	return &plant, nil
}

func (c *Client) UpdatePlant(ctx context.Context, plantID string, req api.UpdatePlantRequest) (*api.Plant, error) {
	var plant api.Plant
	if err := c.jsonRequest(ctx, http.MethodPut, fmt.Sprintf("/plants/%s", plantID), req, &plant); err != nil {
		return nil, errors.WithStack(err)
	}

	return &plant, nil
}

func (c *Client) DeletePlant(ctx context.Context, plantID string) error {
	var res api.MessageResponse
	if err := c.jsonRequest(ctx, http.MethodDelete, fmt.Sprintf("/plants/%s", plantID), nil, &res); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
