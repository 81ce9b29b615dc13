package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Leganyst/handig/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используем имена полей из JSON, а не из Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct прогоняет теги validate и возвращает первое нарушение как *ValidationError.
func checkStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("", "invalid input: %v", err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "%s is required", fe.Field())
	case "min":
		return invalid(fe.Field(), "%s must not be empty", fe.Field())
	case "max":
		return invalid(fe.Field(), "%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return invalid(fe.Field(), "%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return invalid(fe.Field(), "%s is invalid", fe.Field())
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Тело POST /providers.
type CreateProviderPayload struct {
	Name        *string `json:"name"`
	CategoryID  *string `json:"categoryId"`
	ServiceID   *string `json:"serviceId"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

type CreateProviderInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	ServiceID   string  `json:"serviceId" validate:"required"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
}

// ParseCreateProvider нормализует тело запроса и проверяет обязательные поля.
func ParseCreateProvider(p CreateProviderPayload) (CreateProviderInput, error) {
	in := CreateProviderInput{
		Name:        deref(trimPtr(p.Name)),
		CategoryID:  deref(trimPtr(p.CategoryID)),
		ServiceID:   deref(trimPtr(p.ServiceID)),
		Description: p.Description,
		Address:     p.Address,
	}
	if err := checkStruct(in); err != nil {
		return CreateProviderInput{}, err
	}
	return in, nil
}

// UpdateProviderPayload — тело PATCH /providers/:id. Отсутствующие поля не трогаются.
type UpdateProviderPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	ImageURL    *string `json:"imageUrl"`
}

type UpdateProviderInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	ImageURL    *string `json:"imageUrl"`
}

func ParseUpdateProvider(p UpdateProviderPayload) (UpdateProviderInput, error) {
	in := UpdateProviderInput{
		Name:        trimPtr(p.Name),
		Description: p.Description,
		Address:     p.Address,
		ImageURL:    p.ImageURL,
	}
	if err := checkStruct(in); err != nil {
		return UpdateProviderInput{}, err
	}
	return in, nil
}

// updates возвращает только присланные колонки.
func (in UpdateProviderInput) updates() map[string]any {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	return updates
}

// Тело POST /providers/:id/photos.
type AddPhotoPayload struct {
	URL *string `json:"url"`
}

type AddPhotoInput struct {
	URL string `json:"url" validate:"required,max=2048"`
}

func ParseAddPhoto(p AddPhotoPayload) (AddPhotoInput, error) {
	in := AddPhotoInput{URL: deref(trimPtr(p.URL))}
	if err := checkStruct(in); err != nil {
		return AddPhotoInput{}, err
	}
	return in, nil
}

// Тело PATCH /me.
type UpsertProfilePayload struct {
	DisplayName *string `json:"displayName"`
	AccountType *string `json:"accountType"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"companyName"`
	AvatarURL   *string `json:"avatarUrl"`
}

type UpsertProfileInput struct {
	DisplayName *string `json:"displayName" validate:"omitnil,max=255"`
	AccountType *string `json:"accountType" validate:"omitnil,oneof=individual company"`
	Phone       *string `json:"phone" validate:"omitnil,max=32"`
	CompanyName *string `json:"companyName" validate:"omitnil,max=255"`
	AvatarURL   *string `json:"avatarUrl"`
}

func ParseUpsertProfile(p UpsertProfilePayload) (UpsertProfileInput, error) {
	in := UpsertProfileInput{
		DisplayName: p.DisplayName,
		AccountType: trimPtr(p.AccountType),
		Phone:       trimPtr(p.Phone),
		CompanyName: p.CompanyName,
		AvatarURL:   p.AvatarURL,
	}
	if err := checkStruct(in); err != nil {
		return UpsertProfileInput{}, err
	}
	return in, nil
}

// row собирает строку для вставки и список колонок, которые надо обновить при конфликте.
func (in UpsertProfileInput) row(subject string) (*model.Profile, []string) {
	p := &model.Profile{
		ID:          subject,
		AccountType: model.AccountTypeIndividual,
		DisplayName: in.DisplayName,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		AvatarURL:   in.AvatarURL,
	}
	var columns []string
	if in.DisplayName != nil {
		columns = append(columns, "display_name")
	}
	if in.AccountType != nil {
		p.AccountType = model.AccountType(*in.AccountType)
		columns = append(columns, "account_type")
	}
	if in.Phone != nil {
		columns = append(columns, "phone")
	}
	if in.CompanyName != nil {
		columns = append(columns, "company_name")
	}
	if in.AvatarURL != nil {
		columns = append(columns, "avatar_url")
	}
	return p, append(columns, "updated_at")
}
