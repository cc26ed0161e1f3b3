package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type deploymentResponse struct {
	Address    string    `json:"address"`
	ProtocolID uint64    `json:"protocolId"`
	DeployedAt time.Time `json:"deployedAt"`
}

type statusResponse struct {
	Connected  bool                `json:"connected"`
	Account    string              `json:"account,omitempty"`
	ChainID    uint64              `json:"chainId"`
	ChainName  string              `json:"chainName"`
	Deployment *deploymentResponse `json:"deployment"`
	Recording  bool                `json:"recording"`
	CanRecord  bool                `json:"canRecord"`
	Reason     string              `json:"reason,omitempty"`
}

type recordResponse struct {
	Index      uint64        `json:"index"`
	Owner      string        `json:"owner"`
	Weight     domain.Handle `json:"weight"`
	Sets       domain.Handle `json:"sets"`
	Reps       domain.Handle `json:"reps"`
	Timestamp  uint64        `json:"timestamp"`
	RecordedAt time.Time     `json:"recordedAt"`
}

type recordsResponse struct {
	Owner   string           `json:"owner"`
	Count   int              `json:"count"`
	Records []recordResponse `json:"records"`
}

type recordTrainingRequest struct {
	Weight uint32 `json:"weight"`
	Sets   uint32 `json:"sets"`
	Reps   uint32 `json:"reps"`
}

type recordTrainingResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Timestamp   uint64 `json:"timestamp"`
	Contract    string `json:"contract"`
}

type decryptedRecordResponse struct {
	Index      uint64    `json:"index"`
	Timestamp  uint64    `json:"timestamp"`
	RecordedAt time.Time `json:"recordedAt"`
	Weight     uint32    `json:"weight"`
	Sets       uint32    `json:"sets"`
	Reps       uint32    `json:"reps"`
}

func (s *Server) handleStatus(c *gin.Context) {
	status, err := s.tracker.Status(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := statusResponse{
		Connected: status.Connected,
		ChainID:   status.ChainID,
		ChainName: status.ChainName,
		Recording: status.Recording,
		CanRecord: status.CanRecord,
		Reason:    status.Reason,
	}
	if status.Connected {
		response.Account = status.Account.Hex()
	}
	if status.Deployment != nil {
		response.Deployment = &deploymentResponse{
			Address:    status.Deployment.Address.Hex(),
			ProtocolID: status.Deployment.ProtocolID,
			DeployedAt: status.Deployment.DeployedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleProtocol(c *gin.Context) {
	id, err := s.tracker.ProtocolID(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"protocolId": id})
}

func (s *Server) handleRecords(c *gin.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	views, err := s.tracker.LoadRecords(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}

	records := make([]recordResponse, 0, len(views))
	for _, view := range views {
		records = append(records, toRecordResponse(view))
	}

	c.JSON(http.StatusOK, recordsResponse{Owner: owner.Hex(), Count: len(records), Records: records})
}

func (s *Server) handleRecordCount(c *gin.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}

	count, err := s.tracker.RecordCount(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"owner": owner.Hex(), "count": count})
}

func (s *Server) handleRecord(c *gin.Context) {
	owner, ok := ownerParam(c)
	if !ok {
		return
	}
	index, ok := indexParam(c)
	if !ok {
		return
	}

	view, err := s.tracker.Record(c.Request.Context(), owner, index)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecordResponse(view))
}

func (s *Server) handleRecordTraining(c *gin.Context) {
	var request recordTrainingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeProblem(c, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	result, err := s.tracker.RecordTraining(c.Request.Context(), application.RecordTrainingCommand{
		Weight: request.Weight,
		Sets:   request.Sets,
		Reps:   request.Reps,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recordTrainingResponse{
		TxHash:      result.Receipt.TxHash.Hex(),
		BlockNumber: result.Receipt.BlockNumber,
		Timestamp:   result.Receipt.Timestamp,
		Contract:    result.Contract.Address.Hex(),
	})
}

func (s *Server) handleDecrypt(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}

	record, err := s.tracker.DecryptRecord(c.Request.Context(), index)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, decryptedRecordResponse{
		Index:      record.Index,
		Timestamp:  record.Timestamp,
		RecordedAt: record.RecordedAt(),
		Weight:     record.Session.Weight,
		Sets:       record.Session.Sets,
		Reps:       record.Session.Reps,
	})
}

func toRecordResponse(view application.RecordView) recordResponse {
	return recordResponse{
		Index:      view.Index,
		Owner:      view.Record.Owner.Hex(),
		Weight:     view.Record.Weight,
		Sets:       view.Record.Sets,
		Reps:       view.Record.Reps,
		Timestamp:  view.Timestamp,
		RecordedAt: view.RecordedAt(),
	}
}

func ownerParam(c *gin.Context) (common.Address, bool) {
	raw := c.Param("owner")
	if !common.IsHexAddress(raw) {
		writeProblem(c, http.StatusBadRequest, fmt.Errorf("owner %q is not a hex address", raw))
		return common.Address{}, false
	}

	return common.HexToAddress(raw), true
}

func indexParam(c *gin.Context) (uint64, bool) {
	raw := c.Param("index")
	index, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeProblem(c, http.StatusBadRequest, fmt.Errorf("index %q is not an unsigned integer", raw))
		return 0, false
	}

	return index, true
}
