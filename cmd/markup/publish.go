package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/pkg/publish"
)

func publishCmd(opts *globalOptions) *cobra.Command {
	var (
		src    sources
		bucket string
		prefix string
		key    string
		region string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the document and upload it to S3",
		Long: `Render the document and upload it to an S3 bucket.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN.

Examples:
  markup publish --bucket my-site --head head.html --body body.md
  markup publish --bucket my-site --prefix docs/ --key guide.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				cfg.Publish.Prefix = prefix
			}
			if key != "" {
				cfg.Publish.Key = key
			}
			if region != "" {
				cfg.Publish.Region = region
			}
			src = src.merge(cfg.ResolvePath(cfg.Document.Head), cfg.ResolvePath(cfg.Document.Body), cfg.Document.Sanitize)

			doc, err := buildDocument(src, nil)
			if err != nil {
				return err
			}

			p := publish.New(publish.NewS3Client(cfg.Publish.Region), publish.Config{
				Bucket: cfg.Publish.Bucket,
				Prefix: cfg.Publish.Prefix,
				Logger: newLogger(cfg, opts),
			})
			res, err := p.Publish(cmd.Context(), cfg.Publish.Key, doc)
			if err != nil {
				return err
			}

			success(cmd.ErrOrStderr(), "Published s3://%s/%s (%d bytes)", res.Bucket, res.Key, res.Bytes)
			return nil
		},
	}

	cmd.Flags().StringVar(&src.head, "head", "", "Head source file")
	cmd.Flags().StringVar(&src.body, "body", "", "Body source file (.md is converted from Markdown)")
	cmd.Flags().BoolVar(&src.sanitize, "sanitize", false, "Sanitize the body HTML")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Destination bucket (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from config)")
	cmd.Flags().StringVar(&key, "key", "", "Object key (default: index.html)")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (default: us-east-1)")

	return cmd
}
