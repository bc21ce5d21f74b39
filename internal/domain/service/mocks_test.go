package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"cozify-client/internal/domain/model"
)

type MockCloudAPI struct {
	mock.Mock
}

func (m *MockCloudAPI) RequestLogin(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockCloudAPI) EmailLogin(ctx context.Context, email, otp string) (string, error) {
	args := m.Called(ctx, email, otp)
	return args.String(0), args.Error(1)
}

func (m *MockCloudAPI) LANIPs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ips, _ := args.Get(0).([]string)
	return ips, args.Error(1)
}

func (m *MockCloudAPI) HubKeys(ctx context.Context, remoteToken string) (map[string]string, error) {
	args := m.Called(ctx, remoteToken)
	keys, _ := args.Get(0).(map[string]string)
	return keys, args.Error(1)
}

func (m *MockCloudAPI) RefreshSession(ctx context.Context, remoteToken string) (string, error) {
	args := m.Called(ctx, remoteToken)
	return args.String(0), args.Error(1)
}

type MockHubAPI struct {
	mock.Mock
}

func (m *MockHubAPI) HubInfo(ctx context.Context, host string) (*model.HubInfo, error) {
	args := m.Called(ctx, host)
	info, _ := args.Get(0).(*model.HubInfo)
	return info, args.Error(1)
}

func (m *MockHubAPI) TZ(ctx context.Context, route model.Route) (string, error) {
	args := m.Called(ctx, route)
	return args.String(0), args.Error(1)
}

func (m *MockHubAPI) Devices(ctx context.Context, route model.Route) (model.DeviceMap, error) {
	args := m.Called(ctx, route)
	devs, _ := args.Get(0).(model.DeviceMap)
	return devs, args.Error(1)
}

func (m *MockHubAPI) CommandState(ctx context.Context, route model.Route, deviceID string, state model.DeviceState) error {
	args := m.Called(ctx, route, deviceID, state)
	return args.Error(0)
}

func (m *MockHubAPI) CommandOn(ctx context.Context, route model.Route, deviceID string) error {
	args := m.Called(ctx, route, deviceID)
	return args.Error(0)
}

func (m *MockHubAPI) CommandOff(ctx context.Context, route model.Route, deviceID string) error {
	args := m.Called(ctx, route, deviceID)
	return args.Error(0)
}

type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Email(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPrompter) OTP(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockReauthenticator struct {
	mock.Mock
}

func (m *MockReauthenticator) Reauthenticate(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// fakeState is an in-memory StateRepository for the service tests.
type fakeState struct {
	mu      sync.Mutex
	doc     map[string]map[string]string
	commits int
}

func newFakeState() *fakeState {
	return &fakeState{doc: make(map[string]map[string]string)}
}

func (f *fakeState) Get(section, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sec, ok := f.doc[section]
	if !ok {
		return "", false
	}
	v, ok := sec[key]
	return v, ok
}

func (f *fakeState) Set(section, key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doc[section] == nil {
		f.doc[section] = make(map[string]string)
	}
	f.doc[section][key] = value
}

func (f *fakeState) Sections(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for name := range f.doc {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			out = append(out, name)
		}
	}
	return out
}

func (f *fakeState) DeleteSection(section string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.doc, section)
}

func (f *fakeState) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	return nil
}

// seedHub stores a ready-to-use hub record plus cloud token.
func seedHub(state *fakeState, hubID, name string) {
	state.Set(sectionCloud, keyEmail, "user@example.com")
	state.Set(sectionCloud, keyRemoteToken, "cloud-token")
	state.Set(sectionHubs, keyDefault, hubID)
	state.Set(hubSection(hubID), keyHubName, name)
	state.Set(hubSection(hubID), keyHost, "192.0.2.10")
	state.Set(hubSection(hubID), keyHubToken, "hub-token")
	state.Set(hubSection(hubID), keyRemote, "false")
	state.Set(hubSection(hubID), keyAutoRemote, "true")
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
