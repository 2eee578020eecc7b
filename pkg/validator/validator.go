package validator

import (
	"lexchange/pkg/logger"
	"reflect"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"
)

// gin binding validator 的初始化：注册自定义校验和翻译器

var (
	once  sync.Once
	trans ut.Translator
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// LazyInitGinValidator 替换gin默认validator的翻译和自定义tag，language为zh或en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Warnf("gin validator engine 类型不匹配，跳过初始化")
			return
		}

		// 模型里用的是validate tag而不是gin默认的binding
		v.SetTagName("validate")

		// 错误信息里显示label而不是字段名
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			if label := field.Tag.Get("label"); label != "" {
				return label
			}
			return field.Name
		})

		// username: 3-20位字母数字下划线
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRegexp.MatchString(fl.Field().String())
		})

		zhLoc := zh.New()
		enLoc := en.New()
		uni := ut.New(enLoc, zhLoc, enLoc)

		var err error
		switch language {
		case "zh":
			trans, _ = uni.GetTranslator("zh")
			err = zhtrans.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("en")
			err = entrans.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			logger.Errorf("注册validator翻译失败: %v", err)
		}
	})
}

// Translate 把校验错误翻译成可读文案
func Translate(err error) string {
	if err == nil {
		return ""
	}
	if trans == nil {
		return err.Error()
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	for _, e := range errs {
		return e.Translate(trans)
	}
	return err.Error()
}
