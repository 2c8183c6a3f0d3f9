package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// LabelDetector returns image labels, most confident first.
type LabelDetector interface {
	RecognizeLabels(ctx context.Context, base64Img string) ([]string, error)
}

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(ctx context.Context, region string) (*RekognitionService, error) {
	if region == "" {
		return nil, errors.New("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// RecognizeLabels accepts a data URI ("data:image/...;base64,<data>").
// A payload that does not decode is ErrBadRequest; SDK errors pass through.
func (r *RekognitionService) RecognizeLabels(ctx context.Context, base64Img string) ([]string, error) {
	data, err := decodeDataURI(base64Img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}

func decodeDataURI(s string) ([]byte, error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:image") || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New("invalid data URI")
	}
	return base64.StdEncoding.DecodeString(payload)
}
