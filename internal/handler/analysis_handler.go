package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/elevation-backend-go/internal/models"
	"github.com/jengzang/elevation-backend-go/internal/service"
	"github.com/jengzang/elevation-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for elevation analyses
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	benchmarkCSV    string
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService, benchmarkCSV string) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		benchmarkCSV:    benchmarkCSV,
	}
}

// AnalyzeTrace handles POST /api/v1/analysis
func (h *AnalysisHandler) AnalyzeTrace(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	analysis, err := h.analysisService.AnalyzeTrace(req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, analysis)
}

// AnalyzeGPX handles POST /api/v1/analysis/gpx
func (h *AnalysisHandler) AnalyzeGPX(c *gin.Context) {
	var req models.GPXAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	analysis, err := h.analysisService.AnalyzeGPX(req)
	if err != nil {
		if strings.Contains(err.Error(), "failed to load") {
			response.NotFound(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, analysis)
}

// UploadGPX handles POST /api/v1/analysis/upload (multipart form)
func (h *AnalysisHandler) UploadGPX(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file field")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer f.Close()

	intervalM, _ := strconv.ParseFloat(c.PostForm("interval_m"), 64)
	deadbandM, _ := strconv.ParseFloat(c.PostForm("deadband_m"), 64)

	analysis, err := h.analysisService.AnalyzeGPXUpload(fileHeader.Filename, f, c.PostForm("variant"), intervalM, deadbandM)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, analysis)
}

// GetAnalysis handles GET /api/v1/analysis/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid analysis ID")
		return
	}

	analysis, err := h.analysisService.GetAnalysisByID(id)
	if err != nil {
		response.NotFound(c, "Analysis not found")
		return
	}

	response.Success(c, analysis)
}

// ListAnalyses handles GET /api/v1/analysis
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	var filter models.AnalysisFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.analysisService.ListAnalyses(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// ListBenchmarks handles GET /api/v1/benchmarks
func (h *AnalysisHandler) ListBenchmarks(c *gin.Context) {
	entries, err := h.analysisService.ListBenchmarks()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}

// ReloadBenchmarks handles POST /api/v1/benchmarks/reload
func (h *AnalysisHandler) ReloadBenchmarks(c *gin.Context) {
	count, err := h.analysisService.ReloadBenchmarks(h.benchmarkCSV)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"loaded": count})
}
