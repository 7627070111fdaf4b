package gateway_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/msaldanha/nulldev/gateway"
)

const apiKey = "secret-key"

var _ = Describe("Gateway", func() {

	var upstream *httptest.Server
	var proxy *httptest.Server
	var logs *observer.ObservedLogs
	var lastURL *url.URL
	var upstreamStatus int
	var upstreamType string
	var upstreamBody string

	get := func(rawQuery string) (*http.Response, string) {
		resp, er := http.Get(proxy.URL + "/proxy?" + rawQuery)
		Expect(er).To(BeNil())
		defer resp.Body.Close()
		body, er := io.ReadAll(resp.Body)
		Expect(er).To(BeNil())
		return resp, string(body)
	}

	BeforeEach(func() {
		lastURL = nil
		upstreamStatus = http.StatusOK
		upstreamType = "application/json"
		upstreamBody = `{"rows":[{"characterId":"abc123","characterName":"Nulldev","level":110}]}`
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastURL = r.URL
			w.Header().Set("Content-Type", upstreamType)
			w.WriteHeader(upstreamStatus)
			_, _ = w.Write([]byte(upstreamBody))
		}))

		zc, observed := observer.New(zap.DebugLevel)
		logs = observed

		srv, er := gateway.NewServer(gateway.Options{
			UpstreamBaseURL: upstream.URL + "/df/",
			APIKey:          apiKey,
			Logger:          zap.New(zc),
		})
		Expect(er).To(BeNil())
		h, er := srv.Handler()
		Expect(er).To(BeNil())
		proxy = httptest.NewServer(h)
	})

	AfterEach(func() {
		proxy.Close()
		upstream.Close()
	})

	It("Should refuse to start without a key", func() {
		_, er := gateway.NewServer(gateway.Options{UpstreamBaseURL: upstream.URL})
		Expect(er).To(Equal(gateway.ErrMissingAPIKey))
	})

	It("Should reject a request without path", func() {
		resp, body := get("characterName=Nulldev")
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"error":"Missing parameters"}`))
		Expect(lastURL).To(BeNil())
	})

	It("Should forward the request with the key and relay the body", func() {
		resp, body := get("path=servers/cain/characters&characterName=Nulldev&limit=10")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("application/json"))
		Expect(resp.Header.Get("X-Request-Id")).ToNot(BeEmpty())
		Expect(body).To(Equal(upstreamBody))

		Expect(lastURL.Path).To(Equal("/df/servers/cain/characters"))
		q := lastURL.Query()
		Expect(q.Get("characterName")).To(Equal("Nulldev"))
		Expect(q.Get("limit")).To(Equal("10"))
		Expect(q.Get("apikey")).To(Equal(apiKey))
		Expect(q.Has("path")).To(BeFalse())
	})

	It("Should replace a caller supplied key", func() {
		get("path=servers/cain/characters&apikey=stolen")
		Expect(lastURL.Query()["apikey"]).To(Equal([]string{apiKey}))
	})

	It("Should join repeated path parameters", func() {
		get("path=servers&path=cain&path=characters")
		Expect(lastURL.Path).To(Equal("/df/servers/cain/characters"))
	})

	It("Should relay the upstream status code", func() {
		upstreamStatus = http.StatusNotFound
		upstreamBody = `{"error":{"status":404,"code":"DNF000","message":"NOT FOUND"}}`

		resp, body := get("path=servers/cain/characters/nope/timeline")
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		Expect(body).To(MatchJSON(upstreamBody))
	})

	It("Should hide transport failures behind an opaque message", func() {
		upstream.Close()

		resp, body := get("path=servers/cain/characters")
		Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"error":"proxy server error"}`))
		Expect(body).ToNot(ContainSubstring(apiKey))
	})

	It("Should fail when the upstream body is not JSON", func() {
		upstreamType = "text/html"
		upstreamBody = "<html>maintenance</html>"

		resp, body := get("path=servers/cain/characters")
		Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(body).To(MatchJSON(`{"error":"proxy server error"}`))
	})

	It("Should never log the key", func() {
		get("path=servers/cain/characters&characterName=Nulldev")
		upstream.Close()
		get("path=servers/cain/characters")

		Expect(logs.Len()).To(BeNumerically(">", 0))
		for _, entry := range logs.All() {
			Expect(entry.Message).ToNot(ContainSubstring(apiKey))
			for k, v := range entry.ContextMap() {
				Expect(k).ToNot(ContainSubstring(apiKey))
				Expect(fmt.Sprint(v)).ToNot(ContainSubstring(apiKey))
			}
		}
	})

	It("Should answer preflight requests", func() {
		for _, path := range []string{"/proxy", "/anything"} {
			req, er := http.NewRequest(http.MethodOptions, proxy.URL+path, nil)
			Expect(er).To(BeNil())
			resp, er := http.DefaultClient.Do(req)
			Expect(er).To(BeNil())
			_ = resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
			Expect(resp.Header.Get("Access-Control-Allow-Methods")).To(ContainSubstring("GET"))
			Expect(resp.Header.Get("Access-Control-Allow-Methods")).To(ContainSubstring("OPTIONS"))
			Expect(resp.Header.Get("Access-Control-Allow-Headers")).To(ContainSubstring("Content-Type"))
		}
		Expect(lastURL).To(BeNil())
	})
})
