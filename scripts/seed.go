// Command seed submits a batch of synthetic check-ins against a running API
// node, filling the shared queue for demos and load checks.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"
)

var firstNames = []string{"Amina", "Chidi", "Efe", "Funke", "Ibrahim", "Kemi", "Ngozi", "Sola", "Tunde", "Yusuf"}
var lastNames = []string{"Adeyemi", "Bello", "Eze", "Ibrahim", "Mohammed", "Nwosu", "Obi", "Okafor", "Olawale", "Uche"}
var genders = []string{"Male", "Female", "Unknown"}

func main() {
	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:5000"
	}

	count := 10
	if v := os.Getenv("SEED_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid SEED_COUNT: %v", err)
		}
		count = n
	}

	client := &http.Client{Timeout: 15 * time.Second}

	log.Printf("Submitting %d check-ins to %s", count, serverURL)
	for i := 0; i < count; i++ {
		payload := map[string]interface{}{
			"name":   randomName(),
			"age":    18 + rand.Intn(70),
			"gender": genders[rand.Intn(len(genders))],
			"vital_signs": map[string]float64{
				"heart_rate":        55 + rand.Float64()*90,
				"bp_systolic":       95 + rand.Float64()*75,
				"bp_diastolic":      55 + rand.Float64()*55,
				"temperature":       36.0 + rand.Float64()*4,
				"oxygen_saturation": 85 + rand.Float64()*14,
				"respiratory_rate":  10 + rand.Float64()*20,
			},
		}

		body, err := json.Marshal(payload)
		if err != nil {
			log.Fatalf("Failed to marshal payload: %v", err)
		}

		req, err := http.NewRequest(http.MethodPost, serverURL+"/api/patients", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("Failed to build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		// A fresh session per submission so each one registers a new patient.
		req.Header.Set("X-Session-ID", fmt.Sprintf("seed-%d-%d", time.Now().UnixMilli(), i))

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("Check-in %d failed: %v", i+1, err)
		}

		var result struct {
			PatientID     string  `json:"patient_id"`
			PriorityScore float64 `json:"priority_score"`
			RiskLevel     string  `json:"risk_level"`
			QueuePosition int     `json:"queue_position"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			log.Printf("Check-in %d: status %d, could not decode response: %v", i+1, resp.StatusCode, err)
			resp.Body.Close()
			continue
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Printf("Check-in %d: unexpected status %d", i+1, resp.StatusCode)
			continue
		}

		log.Printf("Registered %s: score=%.1f risk=%s position=%d",
			result.PatientID, result.PriorityScore, result.RiskLevel, result.QueuePosition)
	}

	log.Println("Seeding complete")
}

func randomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}
