package reference

import (
	"context"
	"log"

	"github.com/pageza/myplate-diets/backend/config"
)

// SourceFromConfig reads the lists from S3 when a bucket is configured and
// from the reference directory otherwise.
func SourceFromConfig(ctx context.Context, cfg *config.Config) (Source, error) {
	if cfg.ReferenceBucket == "" {
		log.Printf("[Reference] Using lists from %s", cfg.ReferenceDir)
		return DirSource{Dir: cfg.ReferenceDir}, nil
	}

	s3Cfg, err := config.NewS3Config(ctx, cfg.ReferenceBucket)
	if err != nil {
		return nil, err
	}
	log.Printf("[Reference] Using lists from s3://%s/%s", s3Cfg.BucketName, cfg.ReferencePrefix)
	return S3Source{Client: s3Cfg.Client, Bucket: s3Cfg.BucketName, Prefix: cfg.ReferencePrefix}, nil
}
