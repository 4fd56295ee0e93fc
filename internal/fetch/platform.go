package fetch

import (
	"net/url"
	"strings"
)

// Platform is a recognized job board hosting the posting.
type Platform string

// Known platforms. Detection drives selector choice; unknown hosts fall back
// to generic posting selectors.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// DetectPlatform identifies the job board from the posting URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	default:
		return PlatformUnknown
	}
}

// PlatformContentSelectors returns the content selectors to try, most
// specific first, for the given platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".gwt-HTML",
			".job-description",
		}
	default:
		return []string{
			".job-description",
			".job-content",
			"#job-description",
			".posting-content",
			".job-details",
			"main",
			"article",
			".content",
			"#content",
		}
	}
}

// PlatformNoiseSelectors returns elements to strip before text extraction:
// application forms, EEO boilerplate, share widgets, consent banners.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".voluntary-disclosure",
		".eeo-statement",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", ".post-apply")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".application-section")
	default:
		return common
	}
}
