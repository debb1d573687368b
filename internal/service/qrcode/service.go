package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"
	qr "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/service/validation"
)

// ErrInvalidRequest wraps problems with the submitted URL.
var ErrInvalidRequest = errors.New("invalid qr request")

const dataURLPrefix = "data:image/png;base64,"

var (
	darkColor  = color.NRGBA{A: 0xff}
	lightColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Service encodes URLs as QR code images.
type Service struct {
	width    int
	margin   int
	level    qr.RecoveryLevel
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService builds an encoder producing width×width images with a quiet zone of margin modules.
func NewService(width, margin int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		width:    width,
		margin:   margin,
		level:    qr.Medium,
		validate: validation.New(),
		logger:   logger,
	}
}

// Encode validates the request and returns the QR image as a PNG data URL.
func (s *Service) Encode(req models.QRRequest) (string, error) {
	if strings.TrimSpace(req.PDFURL) == "" {
		req.PDFURL = ""
	}
	if err := s.validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRequest, validation.Message(err))
	}

	img, err := s.Image(req.PDFURL)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	s.logger.Debug("qr code generated", zap.Int("bytes", buf.Len()))
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Image renders content as a square QR image.
func (s *Service) Image(content string) (image.Image, error) {
	code, err := qr.New(content, s.level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	modules := len(bitmap) + 2*s.margin
	symbol := imaging.New(modules, modules, lightColor)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				symbol.SetNRGBA(x+s.margin, y+s.margin, darkColor)
			}
		}
	}

	scale := s.width / modules
	if scale < 1 {
		scale = 1
	}
	scaled := imaging.Resize(symbol, modules*scale, modules*scale, imaging.NearestNeighbor)

	size := s.width
	if size < modules*scale {
		size = modules * scale
	}
	canvas := imaging.New(size, size, lightColor)
	return imaging.PasteCenter(canvas, scaled), nil
}
