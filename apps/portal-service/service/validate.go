package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/utils"
)

// newValidator 注册业务相关的校验标签，错误里的字段名使用json名
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	enum := func(values []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return model.Contains(values, fl.Field().String())
		}
	}
	mustRegister(v, "blog_category", enum(model.BlogCategories))
	mustRegister(v, "event_category", enum(model.EventCategories))
	mustRegister(v, "job_type", enum(model.JobTypes))
	mustRegister(v, "job_category", enum(model.JobCategories))
	mustRegister(v, "content_type", func(fl validator.FieldLevel) bool {
		return model.ContentType(fl.Field().String()).Valid()
	})
	mustRegister(v, "resource", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseResource(fl.Field().String())
		return ok
	})
	mustRegister(v, "objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		return utils.IsDate(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// validate 校验参数，失败时返回 *model.ValidationError，每个字段一条
func (s *Service) validate(params any) error {
	err := s.validator.Struct(params)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &model.ValidationError{Errors: make([]model.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Errors = append(out.Errors, model.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
			Tag:     fe.Tag(),
		})
	}
	return out
}

// fieldPath 去掉顶层结构体名，例如 CreateBlogParams.title -> title
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty", field)
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "isodate":
		return fmt.Sprintf("%s must be a valid date", field)
	case "objectid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "blog_category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.BlogCategories, ", "))
	case "event_category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.EventCategories, ", "))
	case "job_type":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.JobTypes, ", "))
	case "job_category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(model.JobCategories, ", "))
	case "content_type":
		return fmt.Sprintf("%s must be one of: blog, event, job", field)
	case "resource":
		return fmt.Sprintf("%s is not a known resource", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
