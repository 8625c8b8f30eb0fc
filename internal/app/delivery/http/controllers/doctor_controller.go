package controllers

import (
	"context"
	"net/http"
	"time"

	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/exceptions"
	"medipoint-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
	}
}

// FindAll is the public doctor directory. No session required.
func (ctrl *DoctorController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("DoctorController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.ListDoctors(ctx)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.ListDoctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorsSuccessMessage, response)
}

func (ctrl *DoctorController) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.requestContext(w, r, "ToggleAvailability")
	if !ok {
		return
	}

	request := new(requests.ToggleAvailabilityRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.DoctorUsecase.ToggleAvailability(ctx, session.DoctorID, *request.Available); err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.ToggleAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, session.DoctorID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.ToggleAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.DoctorID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorAvailabilityToggleMessage, nil)
}

func (ctrl *DoctorController) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.requestContext(w, r, "Dashboard")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetDoctorDashboard(ctx, session.DoctorID)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.GetDoctorDashboard",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, session.DoctorID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoctorController.Dashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.DoctorID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSuccessMessage, response)
}

func (ctrl *DoctorController) requestContext(w http.ResponseWriter, r *http.Request, operation string) (string, *models.Session, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("DoctorController." + operation + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", nil, false
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok {
		ctrl.Log.Error("DoctorController."+operation+" session not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return "", nil, false
	}

	ctrl.Log.Info("DoctorController."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	return requestID, session, true
}
