package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/normalization"
)

// ScanFood uploads one image for analysis. Constraints with zero fields fall
// back to the client's configured ones.
func (c *Client) ScanFood(ctx context.Context, u Upload, cons Constraints) (foodscan.Analysis, error) {
	if cons.MaxSizeBytes <= 0 {
		cons.MaxSizeBytes = c.constraints.MaxSizeBytes
	}
	if strings.TrimSpace(cons.AllowedMimePrefix) == "" {
		cons.AllowedMimePrefix = c.constraints.AllowedMimePrefix
	}
	mediaType, err := cons.Check(u)
	if err != nil {
		c.log.Info("food scan rejected locally", "op", OpFoodScan, "size", u.Size(), "content_type", u.ContentType, "reason", err.Error())
		return foodscan.Analysis{}, err
	}

	payload, contentType, err := imageForm(u, mediaType)
	if err != nil {
		return foodscan.Analysis{}, fmt.Errorf("build food scan form: %w", err)
	}

	var analysis foodscan.Analysis
	err = c.post(ctx, OpFoodScan, PathFoodScanner, contentType, payload, func(obj map[string]any) error {
		env, err := unwrap(OpFoodScan, obj, "analysis")
		if err != nil {
			return err
		}
		// The scanner always nests the analysis, wrapped or not.
		raw := env.Payload
		if env.Shape == normalization.ShapeFlat {
			raw = obj["analysis"]
		}
		out, err := normalization.FoodAnalysis(raw)
		if err != nil {
			return schemaErr(OpFoodScan, err)
		}
		analysis = out
		return nil
	})
	if err != nil {
		return foodscan.Analysis{}, err
	}
	return analysis, nil
}

func imageForm(u Upload, mediaType string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	name := filepath.Base(strings.TrimSpace(u.Filename))
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(name)))
	h.Set("Content-Type", mediaType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
