package products

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/shashiranjanraj/vyapar/pkg/audit"
	"github.com/shashiranjanraj/vyapar/pkg/httpx"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// UploadImage sends one image file for a product. The first image of a
// product is conventionally uploaded with isPrimary true and displayOrder
// counts up from zero.
func (s *Service) UploadImage(ctx context.Context, productID int64, fileName string, file io.Reader, isPrimary bool, displayOrder int) (*Image, error) {
	req := httpx.Post(s.api.URL("/admin/upload/product-image")).
		MultipartBody(map[string]string{
			"product_id":    strconv.FormatInt(productID, 10),
			"is_primary":    strconv.FormatBool(isPrimary),
			"display_order": strconv.Itoa(displayOrder),
		}, "file", fileName, file)

	resp, err := s.api.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out Image
	if err := resp.JSON(&out); err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}

	logger.Info("products: image uploaded", "product_id", productID, "image_id", out.ID)
	audit.Record("products:upload-image", s.actor(), map[string]any{"product_id": productID, "image_id": out.ID})
	return &out, nil
}

// SetPrimaryImage makes the given image the product's primary one.
func (s *Service) SetPrimaryImage(ctx context.Context, imageID int64) error {
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/images/%d/set-primary", imageID), nil, nil); err != nil {
		return err
	}
	audit.Record("products:set-primary-image", s.actor(), map[string]any{"image_id": imageID})
	return nil
}

// DeleteImage removes an uploaded image.
func (s *Service) DeleteImage(ctx context.Context, imageID int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/images/%d", imageID), nil); err != nil {
		return err
	}
	audit.Record("products:delete-image", s.actor(), map[string]any{"image_id": imageID})
	return nil
}
