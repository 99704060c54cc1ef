package gin

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peekay/feedex"
)

// allowedExtensions are the archive formats accepted for upload.
var allowedExtensions = map[string]bool{
	".mhtml": true,
	".mht":   true,
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{})
}

// handleUpload processes a browser form upload and redirects to the
// stored result.
func (s *Server) handleUpload(c *gin.Context) {
	result, err := s.processUpload(c)
	if err != nil {
		s.logger.Warn("upload failed", "error", err)
		c.HTML(statusFromError(err), "index", gin.H{
			"Error": feedex.ErrorMessage(err),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/results/"+result.ID)
}

// handleAPIProcess is the JSON variant of upload for AJAX callers.
func (s *Server) handleAPIProcess(c *gin.Context) {
	result, err := s.processUpload(c)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{
			"success": false,
			"error":   feedex.ErrorMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"id":           result.ID,
		"filename":     result.Filename,
		"stage":        result.Stage,
		"dataCount":    len(result.Records),
		"qualityScore": result.QualityScore,
		"records":      result.Records,
		"report":       result.Report,
	})
}

// processUpload validates the multipart upload, runs the pipeline on a
// uniquely named temporary file, and stores the outcome. The temporary
// file is always removed, so concurrent requests never collide.
func (s *Server) processUpload(c *gin.Context) (*feedex.Result, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, feedex.Errorf(feedex.EINVALID, "no file selected")
	}
	if file.Size > s.config.MaxUploadSize {
		return nil, feedex.Errorf(feedex.EINVALID, "file too large, maximum size is %dMB", s.config.MaxUploadSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, feedex.Errorf(feedex.EINVALID, "invalid file type, upload an MHTML archive (.mhtml or .mht)")
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	tmpPath := filepath.Join(s.config.UploadDir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.logger.Warn("failed to clean up upload", "path", tmpPath, "error", err)
		}
	}()

	out, err := s.pipeline.ProcessFile(c.Request.Context(), tmpPath)
	if err != nil {
		return nil, err
	}

	result := &feedex.Result{
		Filename:     filepath.Base(file.Filename),
		SourceHash:   hashFile(tmpPath),
		Stage:        out.Extraction.Stage,
		QualityScore: out.Report.Score,
		Records:      out.Extraction.Records,
		Report:       out.Report,
	}
	if err := s.results.CreateResult(c.Request.Context(), result); err != nil {
		return nil, err
	}

	s.logger.Info("file processed",
		"filename", result.Filename,
		"result_id", result.ID,
		"posts", len(result.Records),
		"quality_score", result.QualityScore,
		"stage", result.Stage,
	)
	return result, nil
}

func (s *Server) handleResults(c *gin.Context) {
	result, err := s.results.FindResultByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.HTML(statusFromError(err), "index", gin.H{
			"Error": feedex.ErrorMessage(err),
		})
		return
	}
	c.HTML(http.StatusOK, "results", gin.H{
		"Result": result,
	})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	result, err := s.results.FindResultByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "error": feedex.ErrorMessage(err)})
		return
	}
	data, err := feedex.MarshalRecordsCSV(result.Records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "export failed"})
		return
	}
	s.markExported(c, result)
	sendAttachment(c, data, "text/csv", "csv")
}

func (s *Server) handleExportJSON(c *gin.Context) {
	result, err := s.results.FindResultByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"success": false, "error": feedex.ErrorMessage(err)})
		return
	}
	data, err := feedex.MarshalResultJSON(result.Records, result.Report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "export failed"})
		return
	}
	s.markExported(c, result)
	sendAttachment(c, data, "application/json", "json")
}

// markExported advances a result to its final stage once its data has
// left the system. The download must still succeed when the store
// update fails.
func (s *Server) markExported(c *gin.Context, result *feedex.Result) {
	if result.Stage == feedex.StageExported {
		return
	}
	if err := s.results.UpdateResultRecords(c.Request.Context(), result.ID, feedex.StageExported, result.Records); err != nil {
		s.logger.Warn("failed to mark result exported", "result_id", result.ID, "error", err)
	}
}

func sendAttachment(c *gin.Context, data []byte, contentType, ext string) {
	filename := fmt.Sprintf("linkedin_data_%s.%s", time.Now().Format("20060102_150405"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// hashFile returns the xxHash of a file's content as hex, empty on
// read failure. Used to correlate repeat uploads of the same archive.
func hashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := xxhash.Sum64(data)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
