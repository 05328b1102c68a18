// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stockparfait/fmpapi/fmp"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	tmpdir, tmpdirErr := os.MkdirTemp("", "test_config")
	defer os.RemoveAll(tmpdir)

	Convey("Setup succeeded", t, func() {
		So(tmpdirErr, ShouldBeNil)
	})

	Convey("Load with no file and no environment", t, func() {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvBaseURL, "")
		c, err := Load(filepath.Join(tmpdir, "missing"))
		So(err, ShouldBeNil)
		So(c, ShouldResemble, &Config{
			BaseURL:   fmp.DefaultBaseURL,
			UserAgent: fmp.DefaultUserAgent,
		})
		c, err = Load("")
		So(err, ShouldBeNil)
		So(c.APIKey, ShouldEqual, "")
	})

	Convey("Load from the environment", t, func() {
		t.Setenv(EnvAPIKey, "envkey")
		t.Setenv(EnvBaseURL, "http://localhost:1234/api/")
		c, err := Load("")
		So(err, ShouldBeNil)
		So(c.APIKey, ShouldEqual, "envkey")
		So(c.BaseURL, ShouldEqual, "http://localhost:1234/api/")

		cl := c.Client()
		So(cl.Config().APIKey, ShouldEqual, "envkey")
		So(cl.URL(fmp.NewQuery("profile").Symbol("AAPL")), ShouldEqual,
			"http://localhost:1234/api/v3/profile/AAPL")
	})

	Convey("Load from a config file", t, func() {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvBaseURL, "")
		dir := filepath.Join(tmpdir, "file")
		So(os.MkdirAll(dir, 0700), ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, FileName), []byte(`
key = "filekey"
base_url = "http://example.com/api/"
user_agent = "test agent"
`), 0600), ShouldBeNil)

		Convey("file only", func() {
			c, err := Load(dir)
			So(err, ShouldBeNil)
			So(c, ShouldResemble, &Config{
				APIKey:    "filekey",
				BaseURL:   "http://example.com/api/",
				UserAgent: "test agent",
			})
		})

		Convey("environment overrides the file", func() {
			t.Setenv(EnvAPIKey, "envkey")
			c, err := Load(dir)
			So(err, ShouldBeNil)
			So(c.APIKey, ShouldEqual, "envkey")
			So(c.BaseURL, ShouldEqual, "http://example.com/api/")
		})
	})

	Convey("Load fails on a malformed config file", t, func() {
		dir := filepath.Join(tmpdir, "bad")
		So(os.MkdirAll(dir, 0700), ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, FileName), []byte("key = ["), 0600), ShouldBeNil)
		_, err := Load(dir)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "failed to read config file")
	})
}
