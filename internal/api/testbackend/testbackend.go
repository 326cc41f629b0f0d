// Package testbackend is an in-memory Healix backend used by the
// client and sync tests. It speaks the real wire contract: bearer
// auth, token rotation on /refresh, and the {success, message, ...}
// envelope on every endpoint.
package testbackend

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healix-app/healix-go/pkg/model"
)

// Profile is the backend's stored view of the registered user
type Profile struct {
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	DOB             string  `json:"dob"`
	Gender          string  `json:"gender"`
	BloodGroup      string  `json:"blood_group"`
	HeightCm        float64 `json:"height_cm"`
	WeightKg        float64 `json:"weight_kg"`
	Allergies       string  `json:"allergies"`
	KnownConditions string  `json:"known_conditions"`
}

// Backend is the fake server. Mutate its fields between requests to
// script scenarios; all handlers lock around state access.
type Backend struct {
	mu sync.Mutex

	Password string
	Profile  Profile

	Medications   []model.Medication
	Prescriptions []model.Prescription
	Reports       []model.Report

	// Failure switches: when set, the matching endpoint returns 500.
	FailUser          bool
	FailMedications   bool
	FailPrescriptions bool
	FailReports       bool

	// Call counters, for asserting the retry contract.
	RefreshCalls int
	UserCalls    int

	// RefreshDelay holds /refresh open, widening the window in which
	// concurrent 401s should collapse onto one refresh.
	RefreshDelay time.Duration

	accessToken  string
	refreshToken string
}

// New creates a Backend with one registered account
func New(email, password string) *Backend {
	return &Backend{
		Password:     password,
		Profile:      Profile{Email: email},
		accessToken:  uuid.New().String(),
		refreshToken: uuid.New().String(),
	}
}

// Serve starts an httptest server for the backend; the caller owns
// Close.
func (b *Backend) Serve() *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/register", b.handleRegister)
	router.POST("/login", b.handleLogin)
	router.POST("/refresh", b.handleRefresh)
	router.POST("/logout", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })

	router.GET("/user", b.handleUser)

	router.GET("/medications", b.handleMedications)
	router.POST("/medications", b.handleCreateMedication)
	router.PUT("/medications/:id", b.handleUpdateMedication)
	router.DELETE("/medications/:id", b.handleDeleteMedication)

	router.GET("/prescriptions", b.handlePrescriptions)
	router.POST("/prescriptions", b.handleCreatePrescription)
	router.DELETE("/prescriptions/:id", b.handleDeletePrescription)
	router.POST("/prescriptions/ocr", b.handlePrescriptionOCR)

	router.GET("/reports", b.handleReports)
	router.POST("/reports", b.handleCreateReport)
	router.DELETE("/reports/:id", b.handleDeleteReport)
	router.POST("/reports/ocr", b.handleReportOCR)

	return httptest.NewServer(router)
}

// AccessToken returns the currently valid access token
func (b *Backend) AccessToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accessToken
}

// RefreshToken returns the currently valid refresh token
func (b *Backend) RefreshToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshToken
}

// ExpireAccessToken invalidates the current access token so the next
// authenticated request 401s until the client refreshes.
func (b *Backend) ExpireAccessToken() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accessToken = uuid.New().String()
}

func (b *Backend) authorized(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	b.mu.Lock()
	ok := token != "" && token == b.accessToken
	b.mu.Unlock()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token expired"})
	}
	return ok
}

func (b *Backend) handleRegister(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email and password are required"})
		return
	}

	b.mu.Lock()
	b.Profile.FullName = req.FullName
	b.Profile.Email = req.Email
	b.Password = req.Password
	b.accessToken = uuid.New().String()
	b.refreshToken = uuid.New().String()
	access, refresh := b.accessToken, b.refreshToken
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (b *Backend) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	b.mu.Lock()
	valid := req.Email == b.Profile.Email && req.Password == b.Password
	if valid {
		b.accessToken = uuid.New().String()
		b.refreshToken = uuid.New().String()
	}
	access, refresh := b.accessToken, b.refreshToken
	b.mu.Unlock()

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "authenticated": false, "message": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"authenticated": true,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (b *Backend) handleRefresh(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	b.mu.Lock()
	delay := b.RefreshDelay
	b.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	b.mu.Lock()
	b.RefreshCalls++
	valid := token != "" && token == b.refreshToken
	if valid {
		b.accessToken = uuid.New().String()
	}
	access := b.accessToken
	b.mu.Unlock()

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "access_token": access})
}

func (b *Backend) handleUser(c *gin.Context) {
	b.mu.Lock()
	b.UserCalls++
	b.mu.Unlock()
	if !b.authorized(c) {
		return
	}
	b.mu.Lock()
	fail := b.FailUser
	profile := b.Profile
	b.mu.Unlock()

	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

func (b *Backend) handleMedications(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	b.mu.Lock()
	fail := b.FailMedications
	meds := append([]model.Medication(nil), b.Medications...)
	b.mu.Unlock()

	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "medications": meds})
}

func (b *Backend) handleCreateMedication(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	var med model.Medication
	if err := c.ShouldBindJSON(&med); err != nil || med.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "medication name is required"})
		return
	}
	med.ID = uuid.New().String()

	b.mu.Lock()
	b.Medications = append(b.Medications, med)
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"success": true, "medication": med})
}

func (b *Backend) handleUpdateMedication(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	var med model.Medication
	if err := c.ShouldBindJSON(&med); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Medications {
		if b.Medications[i].ID == id {
			med.ID = id
			b.Medications[i] = med
			c.JSON(http.StatusOK, gin.H{"success": true, "medication": med})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "medication not found"})
}

func (b *Backend) handleDeleteMedication(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Medications {
		if b.Medications[i].ID == id {
			b.Medications = append(b.Medications[:i], b.Medications[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "medication not found"})
}

func (b *Backend) handlePrescriptions(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	b.mu.Lock()
	fail := b.FailPrescriptions
	rxs := append([]model.Prescription(nil), b.Prescriptions...)
	b.mu.Unlock()

	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prescriptions": rxs})
}

func (b *Backend) handleCreatePrescription(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	var req struct {
		model.Prescription
		Medications []model.Medication `json:"medications"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Doctor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "doctor is required"})
		return
	}

	rx := req.Prescription
	rx.ID = uuid.New().String()

	b.mu.Lock()
	b.Prescriptions = append(b.Prescriptions, rx)
	for _, med := range req.Medications {
		med.ID = uuid.New().String()
		med.PrescriptionID = rx.ID
		b.Medications = append(b.Medications, med)
	}
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"success": true, "prescription": rx})
}

func (b *Backend) handleDeletePrescription(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Prescriptions {
		if b.Prescriptions[i].ID == id {
			b.Prescriptions = append(b.Prescriptions[:i], b.Prescriptions[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "prescription not found"})
}

func (b *Backend) handlePrescriptionOCR(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	if _, err := c.FormFile("file"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"extracted": gin.H{
			"doctor": "Dr. Mehta",
			"date":   "2025-10-12",
			"medicines": []gin.H{
				{"name": "Metformin", "strength": "500mg", "frequency_per_day": 2, "duration_days": 30},
			},
		},
	})
}

func (b *Backend) handleReportOCR(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report": gin.H{
			"name":    "CBC",
			"date":    "2025-11-02",
			"summary": "Hemoglobin: 13.8 g/dL; WBC: 6.5 x10^3/uL",
			"values": []gin.H{
				{"name": "Hemoglobin", "value": "13.8", "unit": "g/dL"},
				{"name": "WBC", "value": "6.5", "unit": "x10^3/uL"},
			},
			"file_uri":   header.Filename,
			"size_bytes": header.Size,
		},
	})
}

func (b *Backend) handleReports(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	b.mu.Lock()
	fail := b.FailReports
	reports := append([]model.Report(nil), b.Reports...)
	b.mu.Unlock()

	if fail {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports})
}

func (b *Backend) handleCreateReport(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	var report model.Report
	if err := c.ShouldBindJSON(&report); err != nil || report.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "report name is required"})
		return
	}
	report.ID = uuid.New().String()

	b.mu.Lock()
	b.Reports = append(b.Reports, report)
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"success": true, "report": report})
}

func (b *Backend) handleDeleteReport(c *gin.Context) {
	if !b.authorized(c) {
		return
	}
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Reports {
		if b.Reports[i].ID == id {
			b.Reports = append(b.Reports[:i], b.Reports[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "report not found"})
}
