package i18n

import (
	"reflect"
	"testing"
)

func TestLocalesLoad(t *testing.T) {
	for _, lang := range SupportedLanguages {
		t.Run(lang.Code, func(t *testing.T) {
			tr, err := loadTranslations(lang.Code)
			if err != nil {
				t.Fatalf("loadTranslations(%q): %v", lang.Code, err)
			}
			if tr.Session.EnterURL == "" || tr.Download.Completed == "" || tr.Playlist.Complete == "" {
				t.Errorf("%s locale is missing session/download/playlist strings", lang.Code)
			}
		})
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	got := T("xx")
	want := T("en")
	if got.Session.EnterURL != want.Session.EnterURL {
		t.Errorf("T(xx).Session.EnterURL = %q; want %q", got.Session.EnterURL, want.Session.EnterURL)
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("zh"); got != "中文" {
		t.Errorf("LanguageName(zh) = %q", got)
	}
	if got := LanguageName("pt"); got != "pt" {
		t.Errorf("LanguageName(pt) = %q", got)
	}
}

func TestLocalesComplete(t *testing.T) {
	for _, lang := range SupportedLanguages {
		t.Run(lang.Code, func(t *testing.T) {
			tr, err := loadTranslations(lang.Code)
			if err != nil {
				t.Fatal(err)
			}
			sections := reflect.ValueOf(*tr)
			for i := 0; i < sections.NumField(); i++ {
				section := sections.Field(i)
				for j := 0; j < section.NumField(); j++ {
					if section.Field(j).String() == "" {
						t.Errorf("%s.%s is empty", sections.Type().Field(i).Name, section.Type().Field(j).Name)
					}
				}
			}
		})
	}
}
