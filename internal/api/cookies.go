package api

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
)

// persistentJar is a cookie jar that can flush the backend's session cookies
// to a file and reload them on the next run. Only cookies for the configured
// base URL are persisted.
type persistentJar struct {
	*cookiejar.Jar
	path    string
	baseURL string
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (j *persistentJar) load() error {
	if j.path == "" {
		return nil
	}

	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	u, err := url.Parse(j.baseURL)
	if err != nil {
		return err
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value})
	}
	j.SetCookies(u, cookies)

	return nil
}

func (j *persistentJar) save() error {
	if j.path == "" {
		return nil
	}

	u, err := url.Parse(j.baseURL)
	if err != nil {
		return err
	}

	cookies := j.Cookies(u)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}

	return os.WriteFile(j.path, data, 0600)
}

func (j *persistentJar) drop() error {
	fresh, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.Jar = fresh

	if j.path == "" {
		return nil
	}
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
