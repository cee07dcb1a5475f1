package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/Eddy-C127/dance-academy/apps/api/echo"
	"github.com/Eddy-C127/dance-academy/core"
	"github.com/Eddy-C127/dance-academy/core/achievement"
	"github.com/Eddy-C127/dance-academy/core/attendance"
	"github.com/Eddy-C127/dance-academy/core/evaluation"
	"github.com/Eddy-C127/dance-academy/core/event"
	"github.com/Eddy-C127/dance-academy/core/payment"
	"github.com/Eddy-C127/dance-academy/core/report"
	"github.com/Eddy-C127/dance-academy/core/student"
	"github.com/Eddy-C127/dance-academy/core/user"
	emailsvc "github.com/Eddy-C127/dance-academy/services/email"
	logsvc "github.com/Eddy-C127/dance-academy/services/logger"
	inmemdb "github.com/Eddy-C127/dance-academy/storage/database/inmem"
)

var (
	usrRepo user.Repository
	stuRepo student.Repository
	attRepo attendance.Repository
	evlRepo evaluation.Repository
	achRepo achievement.Repository
	pmtRepo payment.Repository
	evtRepo event.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func setup(t *testing.T) Server {
	t.Helper()

	core.Conf.Debug = false
	core.Conf.TestMode = true

	// set up DB & repos
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	stuRepo = inmemdb.NewStudentRepository(db)
	attRepo = inmemdb.NewAttendanceRepository(db)
	evlRepo = inmemdb.NewEvaluationRepository(db)
	achRepo = inmemdb.NewAchievementRepository(db)
	pmtRepo = inmemdb.NewPaymentRepository(db)
	evtRepo = inmemdb.NewEventRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewServiceMock(usrRepo, mailSvc)
	attSvc := attendance.NewService(attRepo)
	stuSvc := student.NewService(stuRepo, attSvc, evlRepo, achRepo)
	evalSvc := evaluation.NewService(db, evlRepo, stuSvc)
	pmtSvc := payment.NewService(pmtRepo, mailSvc)
	evtSvc := event.NewService(evtRepo)
	reportSvc := report.NewService(usrSvc, attSvc, evlRepo, pmtSvc, evtSvc, stuSvc)

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), core.Conf)
	logger.Enable(false)

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs: true,
			UserSvc:        usrSvc,
			StudentSvc:     stuSvc,
			AttendanceSvc:  attSvc,
			EvaluationSvc:  evalSvc,
			PaymentSvc:     pmtSvc,
			EventSvc:       evtSvc,
			ReportSvc:      reportSvc,
			Logger:         logger,
			SignalShutdown: func() {},
		},
	)
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
	wantCode int
	wantData []byte
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

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func createUser(t *testing.T, name, email, pwd, role string, active bool) user.User {
	t.Helper()
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	usr.SetActive(active)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed: %v", err)
		}
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func createStudent(t *testing.T, name, specialty, level, guardianID string) student.Student {
	t.Helper()
	stu, err := stuRepo.CreateStudent(context.Background(), student.Student{
		Name:       name,
		BirthDate:  time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		Specialty:  specialty,
		Level:      level,
		GuardianID: guardianID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func marshalList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marshalList() failed: %v", err)
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
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
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
