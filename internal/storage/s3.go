// Package storage provides S3-compatible object storage for document snapshots.
package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/durgeshw22/campaignwatch/internal/config"
)

// Client wraps an S3-compatible object storage client.
type Client struct {
	s3     *s3.Client
	bucket string
}

// Snapshot holds the archived raw text and capture metadata for a document.
type Snapshot struct {
	RawText []byte       `json:"raw_text,omitempty"`
	Meta    *CaptureMeta `json:"meta,omitempty"`
}

// CaptureMeta records metadata about a snapshot capture.
type CaptureMeta struct {
	DocumentID uuid.UUID `json:"document_id"`
	CapturedAt time.Time `json:"captured_at"`
	RawHash    string    `json:"raw_hash_sha256"`
	Source     string    `json:"source"`
	URL        string    `json:"url"`
}

// NewClient creates a new S3-compatible storage client. With an empty
// endpoint the client is disabled and all uploads become no-ops.
func NewClient(ctx context.Context, cfg config.S3Config) (*Client, error) {
	if cfg.Endpoint == "" {
		slog.Warn("S3 endpoint not configured, snapshot storage disabled")
		return &Client{bucket: cfg.Bucket}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &cfg.Endpoint
		o.UsePathStyle = true
	})

	return &Client{
		s3:     client,
		bucket: cfg.Bucket,
	}, nil
}

// Configured returns true if the S3 client has a valid connection configured.
func (c *Client) Configured() bool {
	return c.s3 != nil
}

// StoreSnapshot compresses and uploads the raw text and capture metadata for
// a document.
func (c *Client) StoreSnapshot(ctx context.Context, docID uuid.UUID, source, url string, rawText []byte) error {
	if c.s3 == nil {
		slog.Warn("snapshot storage not configured, skipping upload", "document_id", docID)
		return nil
	}

	prefix := fmt.Sprintf("snapshots/%s", docID)

	captureMeta := CaptureMeta{
		DocumentID: docID,
		CapturedAt: time.Now().UTC(),
		RawHash:    sha256sum(rawText),
		Source:     source,
		URL:        url,
	}
	metaJSON, err := json.MarshalIndent(captureMeta, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal meta: %w", err)
	}

	compressed, err := gzipCompress(rawText)
	if err != nil {
		return fmt.Errorf("storage: compress raw text: %w", err)
	}

	uploads := map[string][]byte{
		prefix + "/raw.txt.gz":        compressed,
		prefix + "/capture_meta.json": metaJSON,
	}

	for key, body := range uploads {
		_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket: &c.bucket,
			Key:    &key,
			Body:   bytes.NewReader(body),
		})
		if err != nil {
			return fmt.Errorf("storage: upload %s: %w", key, err)
		}

		slog.Debug("snapshot uploaded", "key", key, "size", len(body))
	}

	return nil
}

// GetSnapshot retrieves the archived raw text and metadata for a document.
func (c *Client) GetSnapshot(ctx context.Context, docID uuid.UUID) (*Snapshot, error) {
	if c.s3 == nil {
		return nil, fmt.Errorf("storage: not configured")
	}

	prefix := fmt.Sprintf("snapshots/%s", docID)
	snap := &Snapshot{}

	rawData, err := c.getObject(ctx, prefix+"/raw.txt.gz")
	if err != nil {
		return nil, err
	}
	snap.RawText, err = gzipDecompress(rawData)
	if err != nil {
		return nil, fmt.Errorf("storage: decompress raw text: %w", err)
	}

	metaData, err := c.getObject(ctx, prefix+"/capture_meta.json")
	if err != nil {
		return nil, err
	}
	var meta CaptureMeta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("storage: unmarshal meta: %w", err)
	}
	snap.Meta = &meta

	return snap, nil
}

// DeleteSnapshot removes the snapshot artifacts for a document.
func (c *Client) DeleteSnapshot(ctx context.Context, docID uuid.UUID) error {
	if c.s3 == nil {
		slog.Warn("snapshot storage not configured, skipping delete", "document_id", docID)
		return nil
	}

	prefix := fmt.Sprintf("snapshots/%s", docID)
	for _, suffix := range []string{"/raw.txt.gz", "/capture_meta.json"} {
		key := prefix + suffix
		_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &c.bucket,
			Key:    &key,
		})
		if err != nil {
			// The object may not exist; log and continue.
			slog.Debug("snapshot delete (may not exist)", "key", key, "err", err)
		}
	}

	slog.Debug("snapshot deleted", "document_id", docID)
	return nil
}

func (c *Client) getObject(ctx context.Context, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
