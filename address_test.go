package xsigners_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := xsigners.Address(b)

		So(addr.String(), ShouldEqual, strings.ToUpper(hex.EncodeToString(b)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := xsigners.NewCondition("foo", "bar", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
		So(cond.String(), ShouldStartWith, "foo/bar/")
	})

	Convey("test empty address printing", t, func() {
		So(xsigners.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestAddressBech32RoundTrip(t *testing.T) {
	addr := xsigners.NewCondition("foo", "bar", []byte("data")).Address()
	enc, err := addr.Bech32()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, xsigners.AddressHRP+"1"))

	got, err := xsigners.ParseAddress("bech32:" + enc)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := xsigners.NewCondition("foo", "bar", []byte("conditiondata")).Address()
	hexAddr := hex.EncodeToString(addr)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr xsigners.Address
	}{
		"default decoding": {
			json:     `"` + hexAddr + `"`,
			wantAddr: addr,
		},
		"hex decoding": {
			json:     `"hex:` + hexAddr + `"`,
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"invalid hex length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a xsigners.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := xsigners.NewCondition("foo", "bar", []byte("conditiondata")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got xsigners.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    xsigners.Condition
		wantErr *errors.Error
		ext     string
		typ     string
		data    []byte
	}{
		"valid condition": {
			cond: xsigners.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			ext:  "sigs",
			typ:  "ed25519",
			data: []byte{1, 2, 3},
		},
		"extension too short": {
			cond:    xsigners.NewCondition("a", "ed25519", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"no data": {
			cond:    xsigners.Condition("sigs/ed25519/"),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.data, data)
			assert.NoError(t, tc.cond.Validate())
		})
	}
}
