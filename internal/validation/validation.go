package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Error reports the first violated field rule. Messages are the ones the API
// has always returned, so they are part of the contract.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type BookInput struct {
	CategoryID  int64      `json:"category_id" validate:"required"`
	AuthorID    int64      `json:"author_id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	CoverURL    string     `json:"cover_url" validate:"omitempty,url"`
	ReleaseDate *time.Time `json:"release_date"`
	Pages       int        `json:"pages"`
	Synopsis    string     `json:"synopsis"`
	Highlighted bool       `json:"highlighted"`
}

var validate = validator.New()

var messages = map[string]string{
	"RegisterInput.Name.required":     "Nome é obrigatório.",
	"RegisterInput.Name.min":          "Nome deve conter ao menos 3 caracteres.",
	"RegisterInput.Email.required":    "E-mail é obrigatório.",
	"RegisterInput.Email.email":       "E-mail inválido",
	"RegisterInput.Password.required": "Senha é obrigatório",
	"RegisterInput.Password.min":      "Senha deve conter ao menos 6 caracteres.",
	"LoginInput.Email.required":       "E-mail é obrigatório.",
	"LoginInput.Email.email":          "E-mail inválido",
	"LoginInput.Password.required":    "Senha é obrigatório",
	"BookInput.CategoryID.required":   "Categoria é obrigatória.",
	"BookInput.AuthorID.required":     "Autor é obrigatório.",
	"BookInput.Name.required":         "Nome é obrigatório.",
	"BookInput.CoverURL.url":          "Cover deve ser uma URL válida.",
}

// ValidateRegistration checks the structural rules for a registration
// submission. Side-effect free: no store, no crypto.
func ValidateRegistration(in RegisterInput) error {
	return firstViolation(in)
}

// ValidateLogin checks the structural rules for a login submission. The
// password minimum length is not re-checked at login.
func ValidateLogin(in LoginInput) error {
	return firstViolation(in)
}

func ValidateBook(in BookInput) error {
	return firstViolation(in)
}

// firstViolation runs the declared rules and returns only the first one
// violated, in field declaration order.
func firstViolation(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) || len(validateErrs) == 0 {
		return err
	}

	fe := validateErrs[0]

	msg, ok := messages[fe.Namespace()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("Campo inválido: %s", fe.Field())
	}

	return &Error{Field: fe.Field(), Message: msg}
}
