package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"carrental/internal/controllers"
	"carrental/internal/models"
	"carrental/internal/store"
)

type carStoreMock struct {
	createFn             func(*models.Car) error
	allFn                func() ([]models.Car, error)
	availableFn          func() ([]models.Car, error)
	byIDFn               func(uint) (models.Car, error)
	byCategoryFn         func(string) ([]models.Car, error)
	searchFn             func(string) ([]models.Car, error)
	updateFn             func(uint, map[string]interface{}) error
	updateAvailabilityFn func(uint, bool) error
	deleteFn             func(uint) error
}

func (m *carStoreMock) Create(car *models.Car) error {
	if m.createFn != nil {
		return m.createFn(car)
	}
	return nil
}
func (m *carStoreMock) All() ([]models.Car, error) {
	if m.allFn != nil {
		return m.allFn()
	}
	return nil, nil
}
func (m *carStoreMock) Available() ([]models.Car, error) {
	if m.availableFn != nil {
		return m.availableFn()
	}
	return nil, nil
}
func (m *carStoreMock) ByID(id uint) (models.Car, error) {
	if m.byIDFn != nil {
		return m.byIDFn(id)
	}
	return models.Car{}, store.ErrNotFound
}
func (m *carStoreMock) ByCategory(cat string) ([]models.Car, error) {
	if m.byCategoryFn != nil {
		return m.byCategoryFn(cat)
	}
	return nil, nil
}
func (m *carStoreMock) Search(term string) ([]models.Car, error) {
	if m.searchFn != nil {
		return m.searchFn(term)
	}
	return nil, nil
}
func (m *carStoreMock) Update(id uint, fields map[string]interface{}) error {
	if m.updateFn != nil {
		return m.updateFn(id, fields)
	}
	return nil
}
func (m *carStoreMock) UpdateAvailability(id uint, available bool) error {
	if m.updateAvailabilityFn != nil {
		return m.updateAvailabilityFn(id, available)
	}
	return nil
}
func (m *carStoreMock) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func carRouter(t *testing.T, cs controllers.CarStore) *gin.Engine {
	r := gin.New()
	ctl := controllers.NewCarController(cs, t.TempDir())
	r.GET("/api/cars/search", ctl.SearchCars)
	r.GET("/api/cars/:id", ctl.GetCarByID)
	r.POST("/api/cars", ctl.CreateCar)
	r.PUT("/api/cars/:id", ctl.UpdateCar)
	r.PATCH("/api/cars/:id/availability", ctl.UpdateCarAvailability)
	r.DELETE("/api/cars/:id", ctl.DeleteCar)
	return r
}

func doForm(r *gin.Engine, method, path string, fields map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			panic(err)
		}
	}
	if err := mw.Close(); err != nil {
		panic(err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func carForm(overrides map[string]string) map[string]string {
	form := map[string]string{
		"make":          "Toyota",
		"model":         "Corolla",
		"year":          "2022",
		"category":      "Economy",
		"price_per_day": "50.00",
		"license_plate": "KDA 123A",
	}
	for k, v := range overrides {
		form[k] = v
	}
	return form
}

func TestCreateCar(t *testing.T) {
	var created *models.Car
	cars := &carStoreMock{
		createFn: func(car *models.Car) error {
			car.ID = 3
			created = car
			return nil
		},
	}
	r := carRouter(t, cars)

	w := doForm(r, http.MethodPost, "/api/cars", carForm(nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	if created == nil {
		t.Fatal("car was not persisted")
	}
	if !created.Availability {
		t.Error("new cars must start available")
	}
	if created.Seats != 5 {
		t.Errorf("seats = %d, want default 5", created.Seats)
	}
	if created.PricePerDay != 50.00 {
		t.Errorf("price = %v, want 50.00", created.PricePerDay)
	}
}

func TestCreateCar_Validation(t *testing.T) {
	r := carRouter(t, &carStoreMock{})

	tests := []struct {
		name string
		form map[string]string
	}{
		{"missing license plate", carForm(map[string]string{"license_plate": ""})},
		{"year not numeric", carForm(map[string]string{"year": "twenty"})},
		{"price not numeric", carForm(map[string]string{"price_per_day": "fifty"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doForm(r, http.MethodPost, "/api/cars", tt.form); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateCar_DuplicatePlate(t *testing.T) {
	cars := &carStoreMock{
		createFn: func(*models.Car) error { return store.ErrDuplicateKey },
	}
	r := carRouter(t, cars)

	w := doForm(r, http.MethodPost, "/api/cars", carForm(nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "License plate already exists") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestUpdateCar_PartialFields(t *testing.T) {
	var gotFields map[string]interface{}
	cars := &carStoreMock{
		updateFn: func(id uint, fields map[string]interface{}) error {
			gotFields = fields
			return nil
		},
	}
	r := carRouter(t, cars)

	w := doForm(r, http.MethodPut, "/api/cars/3", map[string]string{
		"price_per_day": "65.50",
		"category":      "Compact",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if len(gotFields) != 2 {
		t.Fatalf("fields = %v, want exactly the two provided", gotFields)
	}
	if gotFields["price_per_day"] != 65.50 {
		t.Errorf("price_per_day = %v (%T), want float 65.50", gotFields["price_per_day"], gotFields["price_per_day"])
	}
	if gotFields["category"] != "Compact" {
		t.Errorf("category = %v", gotFields["category"])
	}
}

func TestUpdateCar_NoFields(t *testing.T) {
	r := carRouter(t, &carStoreMock{})
	if w := doForm(r, http.MethodPut, "/api/cars/3", nil); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateCarAvailability(t *testing.T) {
	var gotFlag *bool
	cars := &carStoreMock{
		updateAvailabilityFn: func(id uint, available bool) error {
			gotFlag = &available
			return nil
		},
	}
	r := carRouter(t, cars)

	w := doJSON(r, http.MethodPatch, "/api/cars/3/availability", map[string]interface{}{"availability": false})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if gotFlag == nil || *gotFlag {
		t.Error("flag not persisted as false")
	}
	if !strings.Contains(w.Body.String(), "Car disabled successfully") {
		t.Errorf("body = %s", w.Body.String())
	}

	// false is a value, not an omission, so only a non-boolean is rejected
	w = doJSON(r, http.MethodPatch, "/api/cars/3/availability", map[string]interface{}{"availability": "yes"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-boolean status = %d, want 400", w.Code)
	}
	w = doJSON(r, http.MethodPatch, "/api/cars/3/availability", map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing field status = %d, want 400", w.Code)
	}
}

func TestDeleteCar(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"has rentals", store.ErrForeignKey, http.StatusBadRequest},
		{"missing", store.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars := &carStoreMock{deleteFn: func(uint) error { return tt.err }}
			r := carRouter(t, cars)
			w := doJSON(r, http.MethodDelete, "/api/cars/3", nil)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestSearchCars_RequiresTerm(t *testing.T) {
	var gotTerm string
	cars := &carStoreMock{
		searchFn: func(term string) ([]models.Car, error) {
			gotTerm = term
			return []models.Car{{Make: "Toyota"}}, nil
		},
	}
	r := carRouter(t, cars)

	if w := doJSON(r, http.MethodGet, "/api/cars/search", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing term status = %d, want 400", w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/cars/search?q=toyota", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if gotTerm != "toyota" {
		t.Errorf("term = %q", gotTerm)
	}
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("list response missing count: %s", w.Body.String())
	}
}

func TestGetCarByID_NotFound(t *testing.T) {
	r := carRouter(t, &carStoreMock{})
	if w := doJSON(r, http.MethodGet, "/api/cars/99", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}

	if w := doJSON(r, http.MethodGet, "/api/cars/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("malformed id status = %d, want 400", w.Code)
	}
}
