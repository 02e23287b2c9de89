package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AccessKeyHeader is the custom header carrying the bearer credential.
const AccessKeyHeader = "access_key"

// requestTimeout applies uniformly to every backend call; a timed-out
// request surfaces as an ordinary failure.
const requestTimeout = 30 * time.Second

// Client wraps HTTP calls to the Aztek backend API.
type Client struct {
	BaseURL    string
	AccessKey  string
	HTTPClient *http.Client
}

// NewClient creates a Client from a base URL (e.g. http://localhost:5000)
// and an access key. An empty key is allowed for the login call.
func NewClient(baseURL, accessKey string) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/") + "/api",
		AccessKey: accessKey,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// APIError is returned when the backend sends a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d — %s", e.Status, e.Message)
}

// IsAuthError reports whether err is a backend 401/403, which must tear the
// session down globally rather than be handled at the call site.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// --- low-level helpers ---

func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.AccessKey != "" {
		req.Header.Set(AccessKeyHeader, c.AccessKey)
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Try to extract the backend's error message.
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &errResp) == nil && (errResp.Error != "" || errResp.Message != "") {
			msg := errResp.Error
			if msg == "" {
				msg = errResp.Message
			}
			return &APIError{Status: resp.StatusCode, Message: msg}
		}
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

// post sends a POST whose arguments travel as query parameters with an empty
// body, which is how the backend's mutating endpoints are exposed.
func (c *Client) post(path string, params url.Values, out interface{}) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	req, err := c.newRequest(http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) postJSON(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) del(path string, params url.Values) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	req, err := c.newRequest(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, nil)
}

// uploadMultipart sends all files in a single multipart request under the
// "files" field. The call is all-or-nothing: the backend either stores the
// whole batch or rejects it.
func (c *Client) uploadMultipart(path string, params url.Values, files []UploadFile) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer writer.Close()

		for _, f := range files {
			part, err := writer.CreateFormFile("files", f.Name)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := io.Copy(part, f.Content); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
	}()

	req, err := c.newRequest(http.MethodPost, path, pr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, nil)
}

// --- auth ---

// Login exchanges an access key for a role and identity. It ignores the
// client's stored key and sends the supplied one.
func (c *Client) Login(accessKey string) (*LoginResponse, error) {
	login := NewClient(strings.TrimSuffix(c.BaseURL, "/api"), accessKey)
	var resp LoginResponse
	if err := login.postJSON("/login", map[string]string{"accessKey": accessKey}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- admin endpoints ---

func (c *Client) GetAllUsers() ([]User, error) {
	var users []User
	if err := c.get("/admins/get-all-users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetAllReports() ([]Report, error) {
	var reports []Report
	if err := c.get("/admins/get-all-reports", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) CreateInspector(name string) error {
	return c.post("/admins/create-inspector", url.Values{"name": {name}}, nil)
}

func (c *Client) CreateReporter(name string) error {
	return c.post("/admins/create-reporter", url.Values{"name": {name}}, nil)
}

func (c *Client) AssignReport(reporterID, reportID string) error {
	return c.post("/admins/assign-report-to-reporter", url.Values{
		"reporterId": {reporterID},
		"reportId":   {reportID},
	}, nil)
}

func (c *Client) UnassignReport(reportID string) error {
	return c.post("/admins/unassign-report", url.Values{"reportId": {reportID}}, nil)
}

func (c *Client) DeleteInspector(id string) error {
	return c.del("/admins/delete-inspector/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteReporter(id string) error {
	return c.del("/admins/delete-reporter/"+url.PathEscape(id), nil)
}

// --- inspector endpoints ---

func (c *Client) CreateReport(reportName, inspectorID string) error {
	return c.post("/inspectors/create-report", url.Values{
		"reportName":  {reportName},
		"inspectorId": {inspectorID},
	}, nil)
}

func (c *Client) InspectorProfile(inspectorID string) (*User, error) {
	var user User
	if err := c.get("/inspectors/profile", url.Values{"inspectorId": {inspectorID}}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) MyReports(inspectorID string) ([]Report, error) {
	var reports []Report
	if err := c.get("/inspectors/my-reports", url.Values{"inspectorId": {inspectorID}}, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) UploadRawFiles(reportID string, files []UploadFile) error {
	return c.uploadMultipart("/inspectors/upload-raw-files", url.Values{"reportId": {reportID}}, files)
}

func (c *Client) RawReportFiles(reportID string) ([]string, error) {
	var listing FileListing
	if err := c.get("/inspectors/report-files/"+url.PathEscape(reportID), nil, &listing); err != nil {
		return nil, err
	}
	return listing.RawFiles, nil
}

func (c *Client) DeleteRawFile(reportID, fileName string) error {
	return c.del("/inspectors/delete-file/"+url.PathEscape(reportID), url.Values{"fileName": {fileName}})
}

// --- reporter endpoints ---

func (c *Client) AssignedReports(reporterID string) ([]Report, error) {
	var reports []Report
	if err := c.get("/reporters/my-assigned-reports", url.Values{"reporterId": {reporterID}}, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) UploadFinalFiles(reportID string, files []UploadFile) error {
	return c.uploadMultipart("/reporters/upload-final-files", url.Values{"reportId": {reportID}}, files)
}

func (c *Client) FinalReportFiles(reportID string) ([]string, error) {
	var listing FileListing
	if err := c.get("/reporters/report-files/"+url.PathEscape(reportID), nil, &listing); err != nil {
		return nil, err
	}
	return listing.FinalFiles, nil
}

func (c *Client) DeleteFinalFile(reportID, fileName string) error {
	return c.del("/reporters/delete-final-file/"+url.PathEscape(reportID), url.Values{"fileName": {fileName}})
}

// --- shared endpoints ---

// DownloadReportArchive streams the raw or final archive for a report.
// The caller must close the returned reader.
func (c *Client) DownloadReportArchive(reportID string, subfolder Subfolder) (io.ReadCloser, error) {
	params := url.Values{
		"reportId":  {reportID},
		"subfolder": {string(subfolder)},
	}
	req, err := c.newRequest(http.MethodGet, "/shared/download-reports?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return resp.Body, nil
}

// ReportNameByID resolves a report id to its display name. The backend
// answers with a plain string body, not JSON.
func (c *Client) ReportNameByID(reportID string) (string, error) {
	req, err := c.newRequest(http.MethodGet, "/shared/get-report-name-by-id?"+url.Values{"reportId": {reportID}}.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return strings.Trim(strings.TrimSpace(string(data)), `"`), nil
}
