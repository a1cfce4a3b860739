package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinAddressLength        = 3
	MaxAddressLength        = 300
	MaxFreeTextLength       = 2000
	MaxReasonLength         = 1000
	MinFullNameLength       = 2
	MaxFullNameLength       = 100
	MaxOrgNameLength        = 200
	MinOrgNameLength        = 2
	MaxBranchNameLength     = 200
	MaxCommentLength        = 1000
	MaxReportDetailsLength  = 2000
	MinReportDetailsLength  = 3
	MaxPhotosCount          = 10
	MaxAccessibilityAids    = 20
	MinRating               = 1
	MaxRating               = 5
	MaxExternalLinkLength   = 500
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateAddress проверяет адрес убежища или филиала.
func ValidateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("адрес обязателен")
	}
	return ValidateLength("адрес", strings.TrimSpace(address), MinAddressLength, MaxAddressLength)
}

// ValidateFullName проверяет имя пользователя или координатора.
func ValidateFullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("имя обязательно")
	}
	return ValidateLength("имя", strings.TrimSpace(name), MinFullNameLength, MaxFullNameLength)
}

// ValidateOrgName проверяет название организации.
func ValidateOrgName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("название организации обязательно")
	}
	return ValidateLength("название организации", strings.TrimSpace(name), MinOrgNameLength, MaxOrgNameLength)
}

// ValidateRating проверяет оценку отзыва.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("рейтинг должен быть от %d до %d", MinRating, MaxRating)
	}
	return nil
}

// ValidateRejectionReason проверяет причину отклонения на модерации.
func ValidateRejectionReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("причина отклонения обязательна")
	}
	return ValidateLength("причина отклонения", strings.TrimSpace(reason), 1, MaxReasonLength)
}

// ValidatePhotos проверяет список URL фотографий.
func ValidatePhotos(photos []string) error {
	if len(photos) > MaxPhotosCount {
		return fmt.Errorf("количество фотографий не может превышать %d", MaxPhotosCount)
	}
	for _, p := range photos {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("ссылка на фотографию не может быть пустой")
		}
		if utf8.RuneCountInString(p) > MaxExternalLinkLength {
			return fmt.Errorf("ссылка на фотографию не может быть длиннее %d символов", MaxExternalLinkLength)
		}
	}
	return nil
}

// ValidateAccessibilityAids проверяет список вспомогательных средств.
func ValidateAccessibilityAids(aids []string) error {
	if len(aids) > MaxAccessibilityAids {
		return fmt.Errorf("количество вспомогательных средств не может превышать %d", MaxAccessibilityAids)
	}

	seen := make(map[string]bool)
	for _, aid := range aids {
		aid = strings.TrimSpace(aid)
		if aid == "" {
			return fmt.Errorf("вспомогательное средство не может быть пустым")
		}
		key := strings.ToLower(aid)
		if seen[key] {
			return fmt.Errorf("средство '%s' указано дважды", aid)
		}
		seen[key] = true
	}
	return nil
}

// ValidateExternalLink проверяет внешнюю ссылку (сайт организации и т.п.).
func ValidateExternalLink(link *string) error {
	if link != nil && *link != "" {
		linkStr := strings.TrimSpace(*link)

		if err := ValidateLength("внешняя ссылка", linkStr, 0, MaxExternalLinkLength); err != nil {
			return err
		}

		parsedURL, err := url.Parse(linkStr)
		if err != nil {
			return fmt.Errorf("некорректный формат URL")
		}

		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("ссылка должна начинаться с http:// или https://")
		}

		if parsedURL.Host == "" {
			return fmt.Errorf("ссылка должна содержать доменное имя")
		}
	}
	return nil
}

// ValidateReportDetails проверяет описание проблемы в жалобе.
func ValidateReportDetails(details string) error {
	if strings.TrimSpace(details) == "" {
		return fmt.Errorf("описание проблемы обязательно")
	}
	return ValidateLength("описание проблемы", strings.TrimSpace(details), MinReportDetailsLength, MaxReportDetailsLength)
}

// ValidateComment проверяет комментарий отзыва.
func ValidateComment(comment *string) error {
	if comment != nil && *comment != "" {
		return ValidateLength("комментарий", strings.TrimSpace(*comment), 0, MaxCommentLength)
	}
	return nil
}
