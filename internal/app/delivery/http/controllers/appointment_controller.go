package controllers

import (
	"context"
	"net/http"
	"time"

	"medipoint-service/internal/app/contracts"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/dto/requests"
	"medipoint-service/internal/pkg/dto/responses"
	"medipoint-service/internal/pkg/exceptions"
	"medipoint-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.requestContext(w, r, "BookAppointment")
	if !ok {
		return
	}

	request := new(requests.BookAppointmentRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	request.PatientID = session.PatientID

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.BookAppointment(ctx, request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.BookAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.requestContext(w, r, "CancelAppointment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CancelAppointment(ctx, appointmentID, session)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.CancelAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.requestContext(w, r, "CompleteAppointment")
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.CompleteAppointment(ctx, appointmentID, session)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.CompleteAppointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.CompleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CompleteAppointmentSuccessMessage, response)
}

// FindAll lists appointments scoped by the caller's role: patients see their
// own bookings, doctors see their schedule, admins see everything.
func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := ctrl.requestContext(w, r, "FindAll")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var response []responses.Appointment
	var err error
	switch {
	case session.IsPatient():
		response, err = ctrl.AppointmentUsecase.ListPatientAppointments(ctx, session.PatientID)
	case session.IsDoctor():
		response, err = ctrl.AppointmentUsecase.ListDoctorAppointments(ctx, session.DoctorID)
	case session.IsAdmin():
		response, err = ctrl.AppointmentUsecase.ListAllAppointments(ctx)
	default:
		err = exceptions.ErrNotMatchRoleType(nil)
	}
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase list appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) requestContext(w http.ResponseWriter, r *http.Request, operation string) (string, *models.Session, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController." + operation + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", nil, false
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok {
		ctrl.Log.Error("AppointmentController."+operation+" session not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return "", nil, false
	}

	ctrl.Log.Info("AppointmentController."+operation+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	return requestID, session, true
}
