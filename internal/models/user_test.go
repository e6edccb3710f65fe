package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cpid = "0123456789abcdef0123456789abcdef"

func TestIsMD5Hex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "lower", in: cpid, want: true},
		{name: "upper", in: "0123456789ABCDEF0123456789ABCDEF", want: true},
		{name: "mixed", in: "0123456789AbCdEf0123456789aBcDeF", want: true},
		{name: "short", in: cpid[:31], want: false},
		{name: "long", in: cpid + "0", want: false},
		{name: "non hex", in: "0123456789abcdef0123456789abcdeg", want: false},
		{name: "empty", in: "", want: false},
		{name: "multibyte", in: "0123456789abcdef0123456789abcdé", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMD5Hex(tt.in))
		})
	}
}

func TestFormatCredit(t *testing.T) {
	assert.Equal(t, "12345.67800000", FormatCredit(12345.678))
	assert.Equal(t, "0.00000000", FormatCredit(0))
	assert.Equal(t, "1000000000.00000000", FormatCredit(1e9))
}

func TestUser_CSV(t *testing.T) {
	u := &User{CPID: cpid, TotalCredit: 100, ExpavgCredit: 50.5, ExpavgTime: 1_000_086_400}
	assert.Equal(t, "100.00000000,50.50000000,1000086400.00000000,"+cpid+"\n", u.CSV())
}

func TestUser_XML(t *testing.T) {
	u := &User{CPID: cpid, TotalCredit: 200, ExpavgCredit: 50, ExpavgTime: 1_000_086_400}
	want := "<user>\n" +
		"<total_credit>200.00000000</total_credit>\n" +
		"<expavg_credit>50.00000000</expavg_credit>\n" +
		"<expavg_time>1000086400.00000000</expavg_time>\n" +
		"<cpid>" + cpid + "</cpid>\n" +
		"</user>\n"
	assert.Equal(t, want, u.XML())
}

func TestUsers_EnsureCreatesOnce(t *testing.T) {
	users := Users{}

	u := users.Ensure(cpid)
	require.NotNil(t, u)
	assert.Equal(t, &User{CPID: cpid}, u)

	u.TotalCredit = 10
	again := users.Ensure(cpid)
	assert.Same(t, u, again)
	assert.Len(t, users, 1)
}

func TestUsers_Sorted(t *testing.T) {
	users := Users{}
	users.Ensure("ffffffffffffffffffffffffffffffff")
	users.Ensure("00000000000000000000000000000000")
	users.Ensure("88888888888888888888888888888888")

	got := users.Sorted()
	require.Len(t, got, 3)
	assert.Equal(t, "00000000000000000000000000000000", got[0].CPID)
	assert.Equal(t, "88888888888888888888888888888888", got[1].CPID)
	assert.Equal(t, "ffffffffffffffffffffffffffffffff", got[2].CPID)
}
