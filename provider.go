package smartaccount

import (
	"context"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/go-enols/go-log"
)

type ProviderOption func(ctx context.Context, p *Provider)

// Provider 只读RPC提供者，在多个节点之间做轮询负载均衡
// 只暴露读操作，签名能力由独立的 Wallet 承担
// 构造之后不再变更，可以被任意多个组装器并发共享
type Provider struct {
	ctx context.Context // 父级上下文

	rpcs []*rpc.Client
	next atomic.Uint64
}

// NewProvider 创建只读RPC提供者
// 不传任何节点选项时使用网络的默认节点（限速每秒1条）
func NewProvider(ctx context.Context, netWork rpc.Cluster, opt ...ProviderOption) *Provider {
	p := new(Provider)
	p.ctx = ctx

	for _, fn := range opt {
		fn(ctx, p)
	}
	if len(p.rpcs) == 0 { // 如果没有rpc就填入默认节点
		p.rpcs = append(p.rpcs, rpc.NewWithCustomRPCClient(
			rpc.NewWithRateLimit(netWork.RPC, 1), // 设置请求限制，每秒1条
		))
	}

	return p
}

// Client 按轮询顺序取下一个rpc节点
func (p *Provider) Client() *rpc.Client {
	n := p.next.Add(1)
	return p.rpcs[(n-1)%uint64(len(p.rpcs))]
}

// GetAccountInfoWithOpts 实现 AccountReader 接口
func (p *Provider) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	return p.Client().GetAccountInfoWithOpts(ctx, account, opts)
}

// GetBalance 查询账户SOL余额
func (p *Provider) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	return p.Client().GetBalance(ctx, account, commitment)
}

// GetLatestBlockhash 获取最新区块哈希，调用方在 Transaction.Build 时使用
func (p *Provider) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return p.Client().GetLatestBlockhash(ctx, commitment)
}

// GetTokenAccountBalance 查询单个代币账户余额
func (p *Provider) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	return p.Client().GetTokenAccountBalance(ctx, account, commitment)
}

// GetTokenAccountsByOwner 查询某个所有者名下的代币账户
func (p *Provider) GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error) {
	return p.Client().GetTokenAccountsByOwner(ctx, owner, conf, opts)
}

// WithRPCClient 设置一个已有的rpc节点
func WithRPCClient(client *rpc.Client) ProviderOption {
	return func(ctx context.Context, p *Provider) {
		p.rpcs = append(p.rpcs, client)
	}
}

// WithEndpoint 添加一个节点地址
//
//	endpoint 节点地址
//	rps 速度限制每秒请求多少次（可选）
func WithEndpoint(endpoint string, rps ...int) ProviderOption {
	return func(ctx context.Context, p *Provider) {
		if len(rps) > 0 && rps[0] > 0 {
			p.rpcs = append(p.rpcs, rpc.NewWithCustomRPCClient(
				rpc.NewWithRateLimit(endpoint, rps[0]),
			))
			return
		}
		p.rpcs = append(p.rpcs, rpc.New(endpoint))
	}
}

// WithRPCProxy 添加一个走指定代理的节点
func WithRPCProxy(endpoint, proxy string) ProviderOption {
	httpClient, err := NewProxyHttpClient(proxy)
	if err != nil {
		log.Error("你提供了一个无效的代理")
		return func(ctx context.Context, p *Provider) {
		}
	}

	return func(ctx context.Context, p *Provider) {
		p.rpcs = append(p.rpcs,
			rpc.NewWithCustomRPCClient(
				jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{
					HTTPClient: httpClient,
				})),
		)
	}
}
