package smartaccount

import (
	"context"
	"net/http"

	"github.com/go-enols/go-log"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Wallet 可选的签名能力，独立于只读的 Provider/Composer
// 组装器产出的未签名交易由它补齐区块哈希、签名并广播
type Wallet struct {
	rpc        *rpc.Client
	wsRpc      *ws.Client
	HTTPClient *http.Client
	Address    string
	Base58Pkey string // base58格式的私钥
	HashPkey   string // hash格式的私钥

	*solana.Wallet
}

// NewWallet 创建钱包，不传Pkey时生成一个全新的密钥对
func NewWallet(ctx context.Context, option ...Option) (*Wallet, error) {
	op, err := NewDefaultOption(ctx, option...)
	if err != nil {
		return nil, err
	}
	var wall *solana.Wallet
	if op.Pkey != "" {
		wall, err = solana.WalletFromPrivateKeyBase58(op.Pkey)
		if err != nil {
			return nil, err
		}
	} else {
		wall = solana.NewWallet()
	}

	log.Printf("成功创建Solana钱包 | %s", wall.PublicKey())
	return &Wallet{
		rpc:        op.RpcClient,
		wsRpc:      op.WsClient,
		HTTPClient: op.HTTPClient,
		Address:    wall.PublicKey().String(),
		Base58Pkey: wall.PrivateKey.String(),
		HashPkey:   hexutil.Encode(wall.PrivateKey),
		Wallet:     wall,
	}, nil
}

func (w *Wallet) GetClient() *rpc.Client {
	return w.rpc
}

func (w *Wallet) GetWsClient() *ws.Client {
	return w.wsRpc
}

// SignAndSend 补齐区块哈希和付费账户，签名后广播组装器产出的交易
// 组装层绝不签名或广播，这一步是调用方的显式选择
func (w *Wallet) SignAndSend(ctx context.Context, unsigned *Transaction) (solana.Signature, error) {
	recentBlockHash, err := w.GetClient().GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		log.Printf("获取Hash失败 | %s", err)
		return solana.Signature{}, err
	}
	// 构造交易
	tx, err := unsigned.Build(w.PublicKey(), recentBlockHash.Value.Blockhash)
	if err != nil {
		log.Printf("构建交易失败 | %s", err)
		return solana.Signature{}, err
	}

	// 签名交易
	if _, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey()) {
			return &w.Wallet.PrivateKey
		}
		return nil
	}); err != nil {
		log.Printf("签名交易失败 | %s", err)
		return solana.Signature{}, err
	}
	// 发送交易
	sig, err := w.GetClient().SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentProcessed,
		},
	)
	if err != nil {
		log.Printf("发送交易失败 | %s", err)
		return solana.Signature{}, err
	}
	log.Printf("Transaction Signature: %s", sig)
	return sig, nil
}

// Confirm 等待交易确认直到成功为止
//
// ctx: 上下文对象，方便后续设置超时等信息
//
// sign: 交易广播的sign
func (w *Wallet) Confirm(ctx context.Context, sign solana.Signature, option ...rpc.CommitmentType) (bool, error) {
	// 设置默认的确认等级 默认使用最快，也就是被单个服务器确认，但是还没有大量的服务器确认，即交易完成
	var commitment = rpc.CommitmentProcessed
	if len(option) > 0 {
		commitment = option[0]
	}
	// 等待交易确认
	sub, err := w.GetWsClient().SignatureSubscribe(
		sign,
		commitment,
	)
	if err != nil {
		log.Printf("Failed to subscribe to signature: %v", err)
		return false, err
	}
	defer sub.Unsubscribe()

	for {
		got, err := sub.Recv(ctx)
		if err != nil {
			log.Printf("Error receiving signature status: %v", err)
			return false, err
		}
		if got.Value.Err != nil {
			log.Printf("Transaction failed: %v", got.Value.Err)
			return false, nil
		}
		log.Printf("Transaction confirmed | %s", sign.String())
		return true, nil
	}
}
