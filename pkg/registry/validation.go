package registry

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samzhu/studio/pkg/types"
)

// Validate checks the descriptor invariants: required fields, absolute
// baseUrl values, unique ids within each kind, known provider tags, and
// defaults that name an existing descriptor. A kind with no descriptors may leave its default empty.
func Validate(props types.StudioProperties) error {
	var errs []error

	llmIDs := make([]string, 0, len(props.LLMModels))
	for _, m := range props.LLMModels {
		errs = append(errs, requireFields(types.ModelKindLLM, m.ID,
			field{"id", m.ID}, field{"name", m.Name}, field{"description", m.Description}, field{"model", m.Model})...)
		if m.Provider == "" {
			errs = append(errs, types.NewMissingFieldError(types.ModelKindLLM, m.ID, "provider"))
		} else if !m.Provider.Valid() {
			errs = append(errs, types.NewUnsupportedProviderError(m.Provider).WithModel(types.ModelKindLLM, m.ID))
		}
		llmIDs = append(llmIDs, m.ID)
	}

	embeddingIDs := make([]string, 0, len(props.EmbeddingModels))
	for _, m := range props.EmbeddingModels {
		errs = append(errs, requireFields(types.ModelKindEmbedding, m.ID,
			field{"id", m.ID}, field{"name", m.Name}, field{"description", m.Description},
			field{"baseUrl", m.BaseURL}, field{"model", m.Model}, field{"apikey", m.APIKey})...)
		errs = append(errs, checkBaseURL(types.ModelKindEmbedding, m.ID, m.BaseURL)...)
		embeddingIDs = append(embeddingIDs, m.ID)
	}

	audioIDs := make([]string, 0, len(props.AudioModels))
	for _, m := range props.AudioModels {
		errs = append(errs, requireFields(types.ModelKindAudio, m.ID,
			field{"id", m.ID}, field{"name", m.Name}, field{"description", m.Description},
			field{"baseUrl", m.BaseURL}, field{"apikey", m.APIKey})...)
		errs = append(errs, checkBaseURL(types.ModelKindAudio, m.ID, m.BaseURL)...)
		audioIDs = append(audioIDs, m.ID)
	}

	imageIDs := make([]string, 0, len(props.ImageModels))
	for _, m := range props.ImageModels {
		errs = append(errs, requireFields(types.ModelKindImage, m.ID,
			field{"id", m.ID}, field{"name", m.Name}, field{"description", m.Description},
			field{"baseUrl", m.BaseURL}, field{"apikey", m.APIKey})...)
		errs = append(errs, checkBaseURL(types.ModelKindImage, m.ID, m.BaseURL)...)
		imageIDs = append(imageIDs, m.ID)
	}

	defaults := props.DefaultModelSetting
	for _, kind := range []struct {
		kind types.ModelKind
		ids  []string
	}{
		{types.ModelKindLLM, llmIDs},
		{types.ModelKindEmbedding, embeddingIDs},
		{types.ModelKindAudio, audioIDs},
		{types.ModelKindImage, imageIDs},
	} {
		errs = append(errs, checkDuplicates(kind.kind, kind.ids)...)
		if err := checkDefault(kind.kind, defaults.IDFor(kind.kind), kind.ids); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type field struct {
	name  string
	value string
}

func requireFields(kind types.ModelKind, id string, fields ...field) []error {
	var errs []error
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, types.NewMissingFieldError(kind, id, f.name))
		}
	}
	return errs
}

// checkBaseURL rejects a non-blank baseUrl that is not an absolute http(s) URL
func checkBaseURL(kind types.ModelKind, id, raw string) []error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return nil
	}
	cfgErr := types.NewConfigError(types.ErrCodeInvalidConfig,
		fmt.Sprintf("baseUrl %q is not an absolute http(s) URL", raw)).WithModel(kind, id).WithField("baseUrl")
	if err != nil {
		cfgErr = cfgErr.WithErr(err)
	}
	return []error{cfgErr}
}

func checkDuplicates(kind types.ModelKind, ids []string) []error {
	var errs []error
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		if first, ok := seen[id]; ok {
			errs = append(errs, types.NewConfigError(types.ErrCodeDuplicateID,
				fmt.Sprintf("id is used by entries %d and %d", first, i)).WithModel(kind, id).WithField("id"))
			continue
		}
		seen[id] = i
	}
	return errs
}

func checkDefault(kind types.ModelKind, defaultID string, ids []string) error {
	if defaultID == "" {
		if len(ids) == 0 {
			return nil
		}
		return types.NewConfigError(types.ErrCodeUnknownDefault,
			fmt.Sprintf("default %s model id is required", kind)).WithField(defaultFieldName(kind))
	}
	for _, id := range ids {
		if id == defaultID {
			return nil
		}
	}
	return types.NewConfigError(types.ErrCodeUnknownDefault,
		fmt.Sprintf("default %s model %q is not configured", kind, defaultID)).
		WithField(defaultFieldName(kind))
}

func defaultFieldName(kind types.ModelKind) string {
	switch kind {
	case types.ModelKindLLM:
		return "defaultModelSetting.llmModelId"
	case types.ModelKindEmbedding:
		return "defaultModelSetting.embeddingModelId"
	case types.ModelKindAudio:
		return "defaultModelSetting.audioModelId"
	default:
		return "defaultModelSetting.imageModelId"
	}
}
