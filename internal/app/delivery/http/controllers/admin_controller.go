package controllers

import (
	"context"
	"net/http"
	"time"

	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/exceptions"
	"medipoint-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AdminController struct {
	Log                *zap.Logger
	DoctorUsecase      contracts.DoctorUsecase
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAdminController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, appointmentUsecase contracts.AppointmentUsecase) *AdminController {
	return &AdminController{
		Log:                logger,
		DoctorUsecase:      doctorUsecase,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AdminController.Dashboard requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AdminController.Dashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.DoctorUsecase.GetAdminDashboard(ctx)
	if err != nil {
		ctrl.Log.Error("Error in DoctorUsecase.GetAdminDashboard",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AdminController.Dashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSuccessMessage, response)
}

func (ctrl *AdminController) FindAllAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AdminController.FindAllAppointments requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AdminController.FindAllAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.ListAllAppointments(ctx)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.ListAllAppointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AdminController.FindAllAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}
