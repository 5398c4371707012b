package controller

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/trendscope/internal/common"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// User-facing validation messages.
const (
	msgNoImage      = "Please select a chart image first"
	msgInvalidYAxis = "Please enter valid Y-axis values"
	msgYAxisOrder   = "Y-axis Max must be greater than Y-axis Min"
	msgNPointsInt   = "Number of points must be a whole number"
	msgNPointsMin   = "Number of points must be at least 1"
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// BuildRequest parses and validates form values for img. Blank optional fields
// take the service defaults; risk profile and horizon are otherwise forwarded verbatim.
func BuildRequest(img model.SelectedImage, form model.FormValues) (model.PredictionRequest, error) {
	yMin, minErr := parseNumber(form.YMin)
	yMax, maxErr := parseNumber(form.YMax)
	if minErr != nil || maxErr != nil {
		return model.PredictionRequest{}, common.NewValidationError("y_axis", msgInvalidYAxis, errors.Join(minErr, maxErr))
	}

	var nPoints int
	if s := strings.TrimSpace(form.NPoints); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return model.PredictionRequest{}, common.NewValidationError("n_points", msgNPointsInt, err)
		}
		if n < 1 {
			return model.PredictionRequest{}, common.NewValidationError("n_points", msgNPointsMin, nil)
		}
		nPoints = n
	}

	req := model.PredictionRequest{
		Image:       img,
		YMin:        yMin,
		YMax:        yMax,
		NPoints:     nPoints,
		RiskProfile: strings.TrimSpace(form.RiskProfile),
		Horizon:     strings.TrimSpace(form.Horizon),
	}
	if err := defaults.Set(&req); err != nil {
		return model.PredictionRequest{}, fmt.Errorf("failed to apply request defaults: %w", err)
	}

	if err := requestValidator.Struct(req); err != nil {
		return model.PredictionRequest{}, translate(err)
	}

	return req, nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// translate turns the first validator failure into a ValidationError.
func translate(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return common.NewValidationError("", err.Error(), err)
	}

	fe := validationErrors[0]
	switch {
	case fe.Tag() == "finite":
		return common.NewValidationError("y_axis", msgInvalidYAxis, err)
	case fe.Tag() == "gtfield":
		return common.NewValidationError("y_max", msgYAxisOrder, err)
	case fe.Field() == "NPoints":
		return common.NewValidationError("n_points", msgNPointsMin, err)
	case fe.Tag() == "required":
		return common.NewValidationError(strings.ToLower(fe.Field()), fe.Field()+" is required", err)
	default:
		return common.NewValidationError(strings.ToLower(fe.Field()), fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag()), err)
	}
}
