package echoapi

import (
	"net/http"
	"testing"

	"github.com/shulehub/shule/core/account"
	"github.com/shulehub/shule/core/course"
	testutil "github.com/shulehub/shule/tests"
)

func Test_courseAPI(t *testing.T) {
	srv := setup(t)

	crs := testutil.CreateCourse(t, crsRepo, "MATH101", "Algebra I", "")
	student := testutil.CreateStudent(t, idtRepo, "stud1", "Jane", "Doe", "Passw0rd", 12, 6, account.GenderFemale)
	admin := testutil.CreateAdmin(t, idtRepo, "boss", "Big", "Boss", "S3cret123")

	newCourse := marchallObj(t, course.NewCourse{
		Code:        "BIO201",
		Name:        "Cell Biology",
		Description: "Introductory cell biology",
		ContentType: course.ContentVideo,
		Content:     "vid://bio201/intro",
	})

	tests := []httpTest{
		// the catalogue is public
		{name: "list is public", method: http.MethodGet, path: "/api/v1/courses",
			wantCode: http.StatusOK, wantData: marchallList(t, crs)},
		{name: "retrieve is public", method: http.MethodGet, path: "/api/v1/courses/MATH101",
			wantCode: http.StatusOK, wantData: marchallObj(t, crs)},
		{name: "unknown course", method: http.MethodGet, path: "/api/v1/courses/NOPE",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: course.ErrNotFound.Error()})},
		// writes are admin-only
		{name: "create needs auth", method: http.MethodPost, path: "/api/v1/courses/register", body: newCourse,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired)},
		{name: "create needs admin", method: http.MethodPost, path: "/api/v1/courses/register", body: newCourse,
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "bad content type", method: http.MethodPost, path: "/api/v1/courses/register",
			body: marchallObj(t, map[string]string{
				"course_code": "BIO201", "course_name": "Cell Biology", "content_type": "hologram",
			}),
			token: getToken(t, admin), wantCode: http.StatusBadRequest},
		{name: "admin may create", method: http.MethodPost, path: "/api/v1/courses/register", body: newCourse,
			token: getToken(t, admin), wantCode: http.StatusCreated},
		{name: "duplicate code", method: http.MethodPost, path: "/api/v1/courses/register", body: newCourse,
			token: getToken(t, admin), wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: course.ErrCourseExists.Error()})},
		{name: "admin may update", method: http.MethodPut, path: "/api/v1/courses/BIO201",
			body:  marchallObj(t, course.UpdateCourse{Name: "Advanced Cell Biology"}),
			token: getToken(t, admin), wantCode: http.StatusOK},
		{name: "delete needs admin", method: http.MethodDelete, path: "/api/v1/courses/BIO201",
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "admin may delete", method: http.MethodDelete, path: "/api/v1/courses/BIO201",
			token: getToken(t, admin), wantCode: http.StatusNoContent},
		{name: "already gone", method: http.MethodDelete, path: "/api/v1/courses/BIO201",
			token: getToken(t, admin), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: course.ErrNotFound.Error()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
