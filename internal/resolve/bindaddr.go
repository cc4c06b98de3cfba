package resolve

import (
	"net"
	"net/url"
	"strconv"

	"github.com/simpleflo/codeserver/internal/args"
	"github.com/simpleflo/codeserver/internal/config"
	"github.com/simpleflo/codeserver/pkg/models"
)

// DefaultAddr is used when no source names a host or port.
var DefaultAddr = Addr{Host: "localhost", Port: 8080}

// Addr is a resolved listen address.
type Addr struct {
	Host string
	Port int
}

// String returns host:port, bracketing IPv6 hosts.
func (a Addr) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func validPort(n int) bool {
	return n >= 0 && n <= 65535
}

// ParseBindAddr parses host[:port]. A missing port means 80, not the
// application default.
func ParseBindAddr(bindAddr string) (Addr, error) {
	u, err := url.Parse("http://" + bindAddr)
	if err != nil {
		return Addr{}, models.Wrap(models.ErrInvalidBindAddr, "invalid bind address "+bindAddr, err)
	}
	if u.Hostname() == "" {
		return Addr{}, models.NewError(models.ErrInvalidBindAddr, "invalid bind address "+bindAddr)
	}

	addr := Addr{Host: u.Hostname(), Port: 80}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || !validPort(n) {
			return Addr{}, models.NewError(models.ErrInvalidBindAddr, "invalid port in bind address "+bindAddr)
		}
		addr.Port = n
	}
	return addr, nil
}

func bindAddrFromArgs(addr Addr, a *args.Args) (Addr, error) {
	if bindAddr, ok := a.Str(args.OptBindAddr); ok {
		parsed, err := ParseBindAddr(bindAddr)
		if err != nil {
			return Addr{}, err
		}
		addr = parsed
	}
	if host, ok := a.Str(args.OptHost); ok {
		addr.Host = host
	}
	if port, ok := a.Number(args.OptPort); ok {
		if !validPort(port) {
			return Addr{}, models.Errorf(models.ErrInvalidNumber, "--port %d is out of range", port)
		}
		addr.Port = port
	}
	return addr, nil
}

// BindAddrFromAllSources layers the config file record, then the command
// line record, over DefaultAddr. $PORT is applied last and overrides any
// port either record set. Either record may be nil.
func BindAddrFromAllSources(cfg, cli *args.Args, env config.Environment) (Addr, error) {
	addr := DefaultAddr
	for _, a := range []*args.Args{cfg, cli} {
		if a == nil {
			continue
		}
		var err error
		if addr, err = bindAddrFromArgs(addr, a); err != nil {
			return Addr{}, err
		}
	}

	if env.Port != "" {
		port, err := strconv.Atoi(env.Port)
		if err != nil || !validPort(port) {
			return Addr{}, models.Errorf(models.ErrInvalidNumber, "$PORT must be a number between 0 and 65535, got %q", env.Port)
		}
		addr.Port = port
	}
	return addr, nil
}
