package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "SunoPrompt/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics.
// A nil or disabled client drops every metric.
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are actually shipped.
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		metricName := apiMetricName(statusCode)
		dimensions := m.dimensions("Endpoint", endpoint)

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	}()
}

// RecordValidationScore records the quality score of a validated prompt
func (m *Client) RecordValidationScore(score int, valid bool) {
	if !m.Enabled() {
		return
	}

	go func() {
		dimensions := m.dimensions("Valid", boolToString(valid))
		if err := m.putMetric(context.Background(), "ValidationScore", float64(score), types.StandardUnitNone, dimensions); err != nil {
			log.Printf("Failed to record ValidationScore metric: %v", err)
		}
	}()
}

// RecordExtraction records how many component fields an extraction filled
func (m *Client) RecordExtraction(fieldCount int) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := m.dimensions("", "")

		if err := m.putMetric(ctx, "Extractions", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record Extractions metric: %v", err)
		}
		if err := m.putMetric(ctx, "ExtractedFields", float64(fieldCount), types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record ExtractedFields metric: %v", err)
		}
	}()
}

func (m *Client) dimensions(name, value string) []types.Dimension {
	dims := []types.Dimension{
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}
	if name != "" {
		dims = append(dims, types.Dimension{Name: aws.String(name), Value: aws.String(value)})
	}
	return dims
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.Enabled() || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

func apiMetricName(statusCode int) string {
	if statusCode >= httpStatusServerError {
		return "APIErrors"
	}
	return "APIRequests"
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
