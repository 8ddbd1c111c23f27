package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shulehub/shule/core/account"
	testutil "github.com/shulehub/shule/tests"
)

func Test_teacherAPI_register(t *testing.T) {
	srv := setup(t)

	testutil.CreateCourse(t, crsRepo, "MATH101", "Algebra I", "")

	newTeacher := func(id string, courses ...string) []byte {
		return marchallObj(t, account.NewTeacher{
			ID:        id,
			FirstName: "Ada",
			LastName:  "Wong",
			Password:  "Chalkb0ard",
			Age:       34,
			Gender:    account.GenderFemale,
			Courses:   courses,
		})
	}

	tests := []httpTest{
		{name: "under age", body: marchallObj(t, map[string]interface{}{
			"id": "teach1", "first_name": "Ada", "last_name": "Wong",
			"password": "Chalkb0ard", "age": 16, "gender": account.GenderFemale,
		}), wantCode: http.StatusBadRequest},
		{name: "unknown course", body: newTeacher("teach1", "PHY101"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"courses": "the following courses do not exist: PHY101"})},
		{name: "ok with course", body: newTeacher("teach1", "MATH101"), wantCode: http.StatusCreated},
		{name: "ok without courses", body: newTeacher("teach2"), wantCode: http.StatusCreated},
		{name: "duplicate id", body: newTeacher("teach1"), wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: account.ErrIdentityExists.Error()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/v1/teachers/register", tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// registering with a course claims it
	crs, err := crsRepo.GetCourse(context.Background(), "MATH101")
	if err != nil {
		t.Fatalf("GetCourse() failed: %v", err)
	}
	if crs.InstructorID != "teach1" {
		t.Errorf("instructor_id = %q; want %q", crs.InstructorID, "teach1")
	}
}

func Test_teacherAPI_adminOnlyWrites(t *testing.T) {
	srv := setup(t)

	teacher := testutil.CreateTeacher(t, idtRepo, "teach1", "Ada", "Wong", "Chalkb0ard", 34, account.GenderFemale)
	student := testutil.CreateStudent(t, idtRepo, "stud1", "Jane", "Doe", "Passw0rd", 12, 6, account.GenderFemale)
	admin := testutil.CreateAdmin(t, idtRepo, "boss", "Big", "Boss", "S3cret123")

	path := "/api/v1/teachers/" + teacher.ID
	update := marchallObj(t, account.UpdateTeacher{FirstName: "Adalyn"})

	tests := []httpTest{
		{name: "list needs auth", method: http.MethodGet, path: "/api/v1/teachers",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errAuthRequired)},
		{name: "student may list", method: http.MethodGet, path: "/api/v1/teachers", token: getToken(t, student),
			wantCode: http.StatusOK},
		{name: "student may retrieve", method: http.MethodGet, path: path, token: getToken(t, student),
			wantCode: http.StatusOK},
		{name: "update needs admin", method: http.MethodPut, path: path, token: getToken(t, teacher), body: update,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "admin may update", method: http.MethodPut, path: path, token: getToken(t, admin), body: update,
			wantCode: http.StatusOK},
		{name: "delete needs admin", method: http.MethodDelete, path: path, token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "admin may delete", method: http.MethodDelete, path: path, token: getToken(t, admin),
			wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name == "admin may update" {
				var idt account.Identity
				if err := json.Unmarshal(rec.Body.Bytes(), &idt); err != nil {
					t.Fatalf("unmarshalling response failed: %v", err)
				}
				if idt.FirstName != "Adalyn" {
					t.Errorf("first_name = %q; want %q", idt.FirstName, "Adalyn")
				}
			}
		})
	}
}
