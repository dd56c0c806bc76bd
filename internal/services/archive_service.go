package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"garment-backend/internal/config"
	"garment-backend/internal/logging"
	"garment-backend/internal/models"
	"garment-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ObjectStore is the part of the S3 API the archive uses
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// ArchivedSheet describes one stored salary sheet
type ArchivedSheet struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ArchiveService uploads a PDF of every saved salary sheet to an S3-compatible bucket
type ArchiveService struct {
	Store   ObjectStore
	Bucket  string
	Prefix  string
	Reports *ReportService
	logger  *zap.Logger
}

// NewArchiveService builds the S3 client for cfg. The endpoint is optional
// and only needed for non-AWS providers such as R2.
func NewArchiveService(ctx context.Context, cfg config.ArchiveConfig, reports *ReportService) (*ArchiveService, error) {
	if !cfg.Usable() {
		return nil, errors.New("archive is disabled or missing bucket/credentials")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewArchiveServiceWithStore(client, cfg.Bucket, cfg.Prefix, reports), nil
}

func NewArchiveServiceWithStore(store ObjectStore, bucket, prefix string, reports *ReportService) *ArchiveService {
	return &ArchiveService{
		Store:   store,
		Bucket:  bucket,
		Prefix:  strings.Trim(prefix, "/"),
		Reports: reports,
		logger:  logging.Named("archive"),
	}
}

// datePrefix is <prefix>/YYYY/MM/YYYY-MM-DD/
func (s *ArchiveService) datePrefix(date string) string {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return path.Join(s.Prefix, "undated") + "/"
	}
	return path.Join(s.Prefix, parts[0], parts[1], date) + "/"
}

// ArchiveWorksheet renders the salary sheet of ws as PDF and uploads it
func (s *ArchiveService) ArchiveWorksheet(ctx context.Context, ws models.Worksheet) (string, error) {
	pdf, err := s.Reports.GenerateSalaryPDF(ws)
	if err != nil {
		return "", fmt.Errorf("failed to render salary sheet: %w", err)
	}

	key := s.datePrefix(ws.Date) + fmt.Sprintf("salary_%s.pdf", timeutil.Now().Format("20060102_150405"))
	_, err = s.Store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
		Metadata: map[string]string{
			"work-date":   ws.Date,
			"grand-total": money(ws.SalarySummary.GrandTotal),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Info("salary sheet archived", zap.String("key", key), zap.Int("bytes", len(pdf)))
	return key, nil
}

// ListArchives returns the stored salary sheets of one work date, newest first
func (s *ArchiveService) ListArchives(ctx context.Context, date string) ([]ArchivedSheet, error) {
	out, err := s.Store.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(s.datePrefix(date)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	sheets := make([]ArchivedSheet, 0, len(out.Contents))
	for _, obj := range out.Contents {
		sheet := ArchivedSheet{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			sheet.Size = *obj.Size
		}
		if obj.LastModified != nil {
			sheet.LastModified = *obj.LastModified
		}
		sheets = append(sheets, sheet)
	}
	// keys embed the upload timestamp
	for i, j := 0, len(sheets)-1; i < j; i, j = i+1, j-1 {
		sheets[i], sheets[j] = sheets[j], sheets[i]
	}
	return sheets, nil
}
