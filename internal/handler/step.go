package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/triplog/backend/internal/domain"
)

// CreateStepRequest is the body of POST /trips/{tripId}/steps.
// Pictures are deliberately not part of the wire type: a step is always
// created without pictures and they are attached one by one afterwards.
type CreateStepRequest struct {
	StepName    string              `json:"stepName"`
	FromDate    *openapi_types.Date `json:"fromDate,omitempty"`
	ToDate      *openapi_types.Date `json:"toDate,omitempty"`
	Description *string             `json:"description,omitempty"`
}

// UpdateStepRequest is the body of PUT /trips/{tripId}/steps/{stepId}.
// Every field is optional: an absent field leaves the stored value untouched.
// A present pictures list is a full replacement keyed by name — pictures
// omitted from it are removed from the step.
type UpdateStepRequest struct {
	StepName     *string             `json:"stepName,omitempty"`
	FromDate     *openapi_types.Date `json:"fromDate,omitempty"`
	ToDate       *openapi_types.Date `json:"toDate,omitempty"`
	Description  *string             `json:"description,omitempty"`
	CoverPicture *PictureRequest     `json:"coverPicture,omitempty"`
	Pictures     []PictureRequest    `json:"pictures,omitempty"`
}

// PictureRequest is the wire form of a picture in request bodies.
// Location is only honoured by the add-picture endpoint; on bulk updates the
// stored location always wins.
type PictureRequest struct {
	Name           string `json:"name"`
	Location       string `json:"location,omitempty"`
	Caption        string `json:"caption,omitempty"`
	ShownInGallery bool   `json:"shownInGallery,omitempty"`
}

// PictureResponse is the wire form of a picture in responses.
type PictureResponse struct {
	Name           string `json:"name"`
	Location       string `json:"location"`
	Caption        string `json:"caption,omitempty"`
	ShownInGallery bool   `json:"shownInGallery"`
}

// StepSummaryResponse is the reduced wire form of a step used in step lists
// and previous/next references.
type StepSummaryResponse struct {
	StepID   string             `json:"stepId"`
	TripID   string             `json:"tripId"`
	StepName string             `json:"stepName"`
	FromDate openapi_types.Date `json:"fromDate"`
	ToDate   openapi_types.Date `json:"toDate"`
}

// StepResponse is the full wire form of a step, including pictures and the
// derived previous/next references.
type StepResponse struct {
	StepID       string               `json:"stepId"`
	TripID       string               `json:"tripId"`
	StepName     string               `json:"stepName"`
	FromDate     openapi_types.Date   `json:"fromDate"`
	ToDate       openapi_types.Date   `json:"toDate"`
	Description  *string              `json:"description,omitempty"`
	Pictures     []PictureResponse    `json:"pictures"`
	CoverPicture *PictureResponse     `json:"coverPicture,omitempty"`
	PreviousStep *StepSummaryResponse `json:"previousStep,omitempty"`
	NextStep     *StepSummaryResponse `json:"nextStep,omitempty"`
	Created      time.Time            `json:"created"`
	LastUpdated  time.Time            `json:"lastUpdated"`
}

// ListSteps handles GET /trips/{tripId}/steps.
func (s *Server) ListSteps(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.steps.ListByTripID(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		writeInternal(w)
		return
	}

	data := make([]StepSummaryResponse, len(summaries))
	for i, st := range summaries {
		data[i] = stepSummaryToResponse(st)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetStep handles GET /trips/{tripId}/steps/{stepId}.
func (s *Server) GetStep(w http.ResponseWriter, r *http.Request) {
	step, err := s.steps.GetByID(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "step not found")
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, stepToResponse(step))
}

// CreateStep handles POST /trips/{tripId}/steps.
func (s *Server) CreateStep(w http.ResponseWriter, r *http.Request) {
	var body CreateStepRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	step := domain.Step{
		TripID:      chi.URLParam(r, "tripId"),
		Name:        body.StepName,
		Description: derefString(body.Description),
	}
	if body.FromDate != nil {
		step.FromDate = body.FromDate.Time
	}
	if body.ToDate != nil {
		step.ToDate = body.ToDate.Time
	}

	created, err := s.steps.Create(r.Context(), step)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, stepToResponse(created))
}

// UpdateStep handles PUT /trips/{tripId}/steps/{stepId}.
// The body is a sparse change-set; see UpdateStepRequest for the picture
// replacement semantics.
func (s *Server) UpdateStep(w http.ResponseWriter, r *http.Request) {
	var body UpdateStepRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	changes := domain.StepChanges{
		Name:        body.StepName,
		Description: body.Description,
	}
	if body.FromDate != nil {
		d := body.FromDate.Time
		changes.FromDate = &d
	}
	if body.ToDate != nil {
		d := body.ToDate.Time
		changes.ToDate = &d
	}
	if body.CoverPicture != nil {
		p := pictureFromRequest(*body.CoverPicture)
		changes.CoverPicture = &p
	}
	if body.Pictures != nil {
		changes.Pictures = make([]domain.Picture, len(body.Pictures))
		for i, p := range body.Pictures {
			changes.Pictures[i] = pictureFromRequest(p)
		}
	}

	updated, err := s.steps.Update(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId"), changes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "step not found")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, stepToResponse(updated))
}

// DeleteStep handles DELETE /trips/{tripId}/steps/{stepId}.
func (s *Server) DeleteStep(w http.ResponseWriter, r *http.Request) {
	err := s.steps.Delete(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "step not found")
			return
		}
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPicture handles POST /trips/{tripId}/steps/{stepId}/pictures.
func (s *Server) AddPicture(w http.ResponseWriter, r *http.Request) {
	var body PictureRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.steps.AddPicture(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId"),
		pictureFromRequest(body))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "step not found")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, stepToResponse(updated))
}

// DeletePicture handles DELETE /trips/{tripId}/steps/{stepId}/pictures/{pictureName}.
func (s *Server) DeletePicture(w http.ResponseWriter, r *http.Request) {
	updated, err := s.steps.DeletePicture(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId"),
		chi.URLParam(r, "pictureName"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "step not found")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, stepToResponse(updated))
}

// --- mapping helpers --------------------------------------------------------

func stepSummaryToResponse(s domain.StepSummary) StepSummaryResponse {
	return StepSummaryResponse{
		StepID:   s.ID,
		TripID:   s.TripID,
		StepName: s.Name,
		FromDate: openapi_types.Date{Time: s.FromDate},
		ToDate:   openapi_types.Date{Time: s.ToDate},
	}
}

// stepToResponse converts a domain.Step into its full wire form.
// The pictures list is always present (possibly empty) so clients can range
// over it without a nil check.
func stepToResponse(s domain.Step) StepResponse {
	resp := StepResponse{
		StepID:      s.ID,
		TripID:      s.TripID,
		StepName:    s.Name,
		FromDate:    openapi_types.Date{Time: s.FromDate},
		ToDate:      openapi_types.Date{Time: s.ToDate},
		Description: nilIfEmpty(s.Description),
		Pictures:    make([]PictureResponse, len(s.Pictures)),
		Created:     s.CreatedAt,
		LastUpdated: s.UpdatedAt,
	}
	for i, p := range s.Pictures {
		resp.Pictures[i] = pictureToResponse(p)
	}
	if s.CoverPicture != nil {
		cover := pictureToResponse(*s.CoverPicture)
		resp.CoverPicture = &cover
	}
	if s.Previous != nil {
		prev := stepSummaryToResponse(*s.Previous)
		resp.PreviousStep = &prev
	}
	if s.Next != nil {
		next := stepSummaryToResponse(*s.Next)
		resp.NextStep = &next
	}
	return resp
}

func pictureFromRequest(p PictureRequest) domain.Picture {
	return domain.Picture{
		Name:           p.Name,
		Location:       p.Location,
		Caption:        p.Caption,
		ShownInGallery: p.ShownInGallery,
	}
}

func pictureToResponse(p domain.Picture) PictureResponse {
	return PictureResponse{
		Name:           p.Name,
		Location:       p.Location,
		Caption:        p.Caption,
		ShownInGallery: p.ShownInGallery,
	}
}
