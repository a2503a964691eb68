package judgeapi

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/to404hanga/online_judge_frontend/model"
)

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	var result model.LoginResult
	err := c.doJSON(ctx, http.MethodPost, "accounts/login/", "", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, http.MethodPost, "accounts/register/", "", map[string]string{
		"username": username,
		"password": password,
	}, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "accounts/profile/", token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, settings stdjson.RawMessage) error {
	return c.doJSON(ctx, http.MethodPatch, "accounts/profile/", token, map[string]stdjson.RawMessage{
		"settings": settings,
	}, nil)
}

func (c *HTTPClient) DeleteProfile(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "accounts/profile/", token, nil, nil)
}

func (c *HTTPClient) SetProfilePic(ctx context.Context, token, filename string, pic io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("profile_pic", filename)
	if err != nil {
		return fmt.Errorf("build profile pic form: %w", err)
	}
	if _, err = io.Copy(part, pic); err != nil {
		return fmt.Errorf("copy profile pic into form: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("finish profile pic form: %w", err)
	}
	return c.do(ctx, http.MethodPatch, "accounts/profile/pic/", token, &buf, writer.FormDataContentType(), nil)
}
