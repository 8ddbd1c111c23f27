package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/account"
	"github.com/shulehub/shule/core/auth"
	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/grade"
	emailsvc "github.com/shulehub/shule/services/email"
	inmemdb "github.com/shulehub/shule/storage/database/inmem"
)

var (
	testConf *core.Config
	idtRepo  account.Repository
	crsRepo  course.Repository
	grdRepo  grade.Repository

	errAuthRequired = httpErr{Error: "authentication required"}
	errForbidden    = httpErr{Error: "permission denied"}
)

// stdLogger satisfies core.Logger for tests without reporting anywhere.
type stdLogger struct {
	std *log.Logger
}

func (l stdLogger) log(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}
func (l stdLogger) Debug(msg string, args ...interface{}) { l.log(msg, args) }
func (l stdLogger) Info(msg string, args ...interface{})  { l.log(msg, args) }
func (l stdLogger) Warn(msg string, args ...interface{})  { l.log(msg, args) }
func (l stdLogger) Error(msg string, args ...interface{}) { l.log(msg, args) }
func (l stdLogger) Fatal(msg string, args ...interface{}) { l.log(msg, args); l.std.Fatal(msg) }

func setup(t *testing.T) Server {
	testConf = core.NewConfig()
	testConf.Debug = false
	testConf.TestMode = true

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	idtRepo = inmemdb.NewIdentityRepository(db)
	crsRepo = inmemdb.NewCourseRepository(db)
	grdRepo = inmemdb.NewGradeRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(testConf)
	courseSvc := course.NewService(crsRepo)
	accountSvc := account.NewService(idtRepo, courseSvc, mailSvc, testConf)
	gradeSvc := grade.NewService(grdRepo, accountSvc)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)

	return NewServer(ServerDeps{
		Conf:           testConf,
		Logger:         stdLogger{std: log.New(os.Stdout, "TEST : ", log.LstdFlags)},
		AccountSvc:     accountSvc,
		CourseSvc:      courseSvc,
		GradeSvc:       gradeSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	cookie   *http.Cookie
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, idt account.Identity) string {
	codec := auth.NewCodec(testConf)
	token, err := codec.Encode(codec.NewClaims(idt.ID, idt.Name(), idt.Role, idt.Age, idt.Gender))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func getSignedCookie(t *testing.T, idt account.Identity) *http.Cookie {
	return &http.Cookie{
		Name:  tokenCookieName,
		Value: auth.SignValue(getToken(t, idt), []byte(testConf.SecretKey)),
	}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
