package queueassigner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// Client is the interface to the external queue-assigner service, which
// exposes both the risk scorer (/predict) and the shared queue register
// (/queue/).
type Client interface {
	Predict(ctx context.Context, payload VitalSignsPayload) (*PredictResponse, error)
	Enqueue(ctx context.Context, payload EnqueuePayload) (*EnqueueResponse, error)
	GetQueue(ctx context.Context) (*QueueResponse, error)
}

// HTTPClient is the HTTP implementation of Client. A shared circuit breaker
// makes a dead upstream fail fast instead of stacking request timeouts while
// kiosks keep submitting.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// VitalSignsPayload is the scorer's wire format for vitals. The upstream API
// spells out blood pressure fields in full, unlike the kiosk payload.
type VitalSignsPayload struct {
	HeartRate              float64 `json:"heart_rate"`
	BloodPressureSystolic  float64 `json:"blood_pressure_systolic"`
	BloodPressureDiastolic float64 `json:"blood_pressure_diastolic"`
	Temperature            float64 `json:"temperature"`
	OxygenSaturation       float64 `json:"oxygen_saturation"`
	RespiratoryRate        float64 `json:"respiratory_rate"`
}

// PredictResponse is the scorer's answer for one set of vitals.
type PredictResponse struct {
	PriorityScore float64 `json:"priority_score"`
	RiskLevel     string  `json:"risk_level"`
}

// EnqueuePayload registers a patient with the queue. PatientID is generated
// by the caller and reused on retries; it is also sent as the Idempotency-Key
// header so the register can deduplicate a replayed append.
type EnqueuePayload struct {
	PatientID     string            `json:"patient_id"`
	Name          string            `json:"name"`
	Age           int               `json:"age"`
	Gender        string            `json:"gender"`
	PriorityScore float64           `json:"priority_score"`
	VitalSigns    VitalSignsPayload `json:"vital_signs"`
	Timestamp     string            `json:"timestamp"`
}

// EnqueueResponse is the register's placement answer.
type EnqueueResponse struct {
	QueuePosition     int    `json:"queue_position"`
	EstimatedWaitTime int    `json:"estimated_wait_time"`
	Timestamp         string `json:"timestamp"`
}

// QueueEntryRecord is one queued patient as reported by the register.
type QueueEntryRecord struct {
	PatientID         string  `json:"patient_id"`
	Name              string  `json:"name"`
	Age               int     `json:"age"`
	Gender            string  `json:"gender"`
	PriorityScore     float64 `json:"priority_score"`
	RiskLevel         string  `json:"risk_level"`
	QueuePosition     int     `json:"queue_position"`
	EstimatedWaitTime int     `json:"estimated_wait_time"`
	Timestamp         string  `json:"timestamp"`
}

// QueueResponse is the register's current ordered snapshot. Order is owned
// by the register and preserved as received.
type QueueResponse struct {
	Queue []QueueEntryRecord `json:"queue"`
}

// NewClient creates a new queue-assigner client.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "queue-assigner",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
	}
}

// Predict submits normalized vitals for scoring.
func (c *HTTPClient) Predict(ctx context.Context, payload VitalSignsPayload) (*PredictResponse, error) {
	out := &PredictResponse{}
	endpoint := fmt.Sprintf("%s/predict", c.baseURL)
	if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Enqueue appends a patient to the shared queue.
func (c *HTTPClient) Enqueue(ctx context.Context, payload EnqueuePayload) (*EnqueueResponse, error) {
	out := &EnqueueResponse{}
	endpoint := fmt.Sprintf("%s/queue/", c.baseURL)
	headers := map[string]string{"Idempotency-Key": payload.PatientID}
	if err := c.doJSON(ctx, http.MethodPost, endpoint, payload, headers, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQueue fetches the current ordered queue snapshot.
func (c *HTTPClient) GetQueue(ctx context.Context) (*QueueResponse, error) {
	out := &QueueResponse{}
	endpoint := fmt.Sprintf("%s/queue/", c.baseURL)
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, payload interface{}, headers map[string]string, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		var body io.Reader
		if payload != nil {
			encoded, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			body = bytes.NewReader(encoded)
		}

		httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			httpReq.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("queue assigner returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode queue assigner response: %w", err)
		}
		return nil, nil
	})
	return err
}
